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
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/abwriter/llm/log"
)

// Pipeline runs steps one at a time in CanonicalOrder, feeding each step the
// previous step's output.
type Pipeline struct {
	Steps    []Step
	Progress ProgressSink
}

// Run executes all steps against st. On success st.Status is
// StatusCompleted and st.Current holds the final text. The first failing
// step moves st to StatusFailed and no later step runs. Cancellation
// observed between steps moves st to StatusCancelled.
func (p *Pipeline) Run(ctx context.Context, st *PipelineState) error {
	if st == nil {
		return fmt.Errorf("pipeline: state is nil")
	}
	if st.Status != StatusIdle {
		return fmt.Errorf("pipeline: state is %s, want %s", st.Status, StatusIdle)
	}
	sink := p.Progress
	if sink == nil {
		sink = nopSink{}
	}
	starts, _ := sink.(StepStartListener)

	steps := ordered(p.Steps)
	total := len(steps)
	st.Status = StatusRunning
	for i, step := range steps {
		if step == nil {
			st.Status = StatusFailed
			return fmt.Errorf("pipeline: step %d is nil", i)
		}
		st.StepIndex = i
		if err := ctx.Err(); err != nil {
			st.Status = StatusCancelled
			log.Info("Pipeline cancelled before step %s", step.Name())
			return &CancelError{Step: step.Name(), Cause: err}
		}
		if starts != nil {
			starts.OnStepStart(i+1, total, step.Label())
		}
		if err := p.runStep(ctx, step, st); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				st.Status = StatusCancelled
				return &CancelError{Step: step.Name(), Cause: ctxErr}
			}
			st.Status = StatusFailed
			return err
		}
		sink.OnProgress(Progress{Index: i + 1, Total: total, Label: step.Label()})
	}
	st.Status = StatusCompleted
	sink.OnProgress(Progress{Index: total, Total: total, Label: DoneLabel, Done: true})
	return nil
}

func (p *Pipeline) runStep(ctx context.Context, step Step, st *PipelineState) error {
	input := st.Current
	start := time.Now()
	log.Debug("Step %s started (%d bytes)", step.Name(), len(input.Text))

	result, err := step.Produce(ctx, input.Text)
	if err == nil && result == nil {
		err = fmt.Errorf("step returned no result")
	}
	rec := StepRecord{
		StepName:  step.Name(),
		Kind:      step.Kind(),
		InputHash: input.Hash,
		Time:      start,
		Duration:  time.Since(start),
	}
	if err != nil {
		rec.Status = StepFailed
		rec.Error = err.Error()
		st.History = append(st.History, rec)
		log.Error("Step %s failed: %v", step.Name(), err)
		return &StepError{Step: step.Name(), Kind: step.Kind(), Cause: err}
	}

	output := NewSnapshot(result.EditedText)
	rec.Status = StepOK
	rec.OutputHash = output.Hash
	rec.Changed = !output.Same(input)
	st.History = append(st.History, rec)
	st.Current = output

	if c := strings.TrimSpace(result.Comments); c != "" {
		st.Sections = append(st.Sections, Section{Step: step.Name(), Comments: c})
	}
	log.Debug("Step %s finished in %s (changed=%v)", step.Name(), rec.Duration, rec.Changed)
	return nil
}
