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

import (
	"time"
)

// Status is the state of a pipeline run.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// PipelineState is the single source of truth of one run. Only the pipeline
// writes to it; Current has exactly one writer at a time.
type PipelineState struct {
	Status    Status
	StepIndex int // index of the running (or failing) step

	Original Snapshot
	Current  Snapshot

	Sections []Section
	History  []StepRecord
}

// NewPipelineState creates an idle state for text.
func NewPipelineState(text string) *PipelineState {
	snap := NewSnapshot(text)
	return &PipelineState{
		Status:   StatusIdle,
		Original: snap,
		Current:  snap,
	}
}

// Section is the commentary one step produced.
type Section struct {
	Step     string `json:"step"`
	Comments string `json:"comments"`
}

// StepRecord is an immutable log entry for one step execution.
type StepRecord struct {
	StepName   string        `json:"step"`
	Kind       Kind          `json:"kind"`
	Status     StepStatus    `json:"status"`
	InputHash  string        `json:"input_hash"`
	OutputHash string        `json:"output_hash,omitempty"`
	Changed    bool          `json:"changed"`
	Error      string        `json:"error,omitempty"`
	Time       time.Time     `json:"time"`
	Duration   time.Duration `json:"duration"`
}

// StepStatus is the outcome of a step run.
type StepStatus string

const (
	StepOK     StepStatus = "ok"
	StepFailed StepStatus = "failed"
)
