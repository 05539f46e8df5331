// Copyright 2025 ByteDance Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

// DoneLabel is the label of the terminal progress notification.
const DoneLabel = "All done!"

// Progress is emitted once per completed step and once more, with Done set,
// when the run completes.
type Progress struct {
	Index int // 1-based number of the completed step
	Total int
	Label string
	Done  bool
}

// ProgressSink receives progress notifications. It is called synchronously
// from the pipeline, between steps.
type ProgressSink interface {
	OnProgress(p Progress)
}

// StepStartListener is an optional extension of ProgressSink notified right
// before a step calls out to its capability.
type StepStartListener interface {
	OnStepStart(index, total int, label string)
}

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(p Progress)

func (f ProgressFunc) OnProgress(p Progress) { f(p) }

type nopSink struct{}

func (nopSink) OnProgress(Progress) {}
