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
	"fmt"
	"strings"
)

// Request is the input of one run.
type Request struct {
	Text  string
	Steps []Kind
	Tone  string // used only when KindTone is selected
}

// Result is the outcome of a completed run.
type Result struct {
	FinalText string       `json:"final_text"`
	Sections  []Section    `json:"sections,omitempty"`
	Revisions []StepRecord `json:"revisions,omitempty"`
}

// Comments joins the commentary sections in execution order, each under its
// own heading. It is empty when no step commented.
func (r *Result) Comments() string {
	parts := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		parts = append(parts, fmt.Sprintf("#### %s\n%s", s.Step, s.Comments))
	}
	return strings.Join(parts, "\n")
}

// Run builds the selected steps and executes them. Selecting no steps
// returns the text unchanged with no commentary, still completing with the
// terminal progress notice. Blank text with at least one step selected fails
// with ErrEmptyInput before anything runs.
func Run(ctx context.Context, req Request, builder StepBuilder, sink ProgressSink) (*Result, error) {
	kinds := Plan(req.Steps)
	if len(kinds) > 0 && strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyInput
	}

	steps := make([]Step, 0, len(kinds))
	for _, k := range kinds {
		step, err := builder.Build(k, req)
		if err != nil {
			return nil, fmt.Errorf("build step %s: %w", k, err)
		}
		steps = append(steps, step)
	}

	st := NewPipelineState(req.Text)
	p := &Pipeline{Steps: steps, Progress: sink}
	if err := p.Run(ctx, st); err != nil {
		return nil, err
	}
	return &Result{
		FinalText: st.Current.Text,
		Sections:  st.Sections,
		Revisions: st.History,
	}, nil
}
