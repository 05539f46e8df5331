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

package steps

import (
	"context"
	"fmt"

	"github.com/cloudwego/abwriter/internal/pipeline"
	"github.com/cloudwego/abwriter/llm"
	"github.com/cloudwego/abwriter/llm/role"
)

// EditStep sends its rendered role instructions and the input text to an
// llm.Editor. Grammar, clarity and tone passes are all EditSteps that differ
// only in their role and parameters.
type EditStep struct {
	kind         pipeline.Kind
	name         string
	label        string
	instructions string
	editor       llm.Editor
}

var _ pipeline.Step = (*EditStep)(nil)

func newEditStep(kind pipeline.Kind, r *role.Role, p role.Params, editor llm.Editor) (*EditStep, error) {
	if editor == nil {
		return nil, fmt.Errorf("%s step: editor is nil", kind)
	}
	if r == nil {
		return nil, fmt.Errorf("%s step: role is nil", kind)
	}
	ins, label, err := r.Render(p)
	if err != nil {
		return nil, fmt.Errorf("render role %s: %w", r.Name, err)
	}
	return &EditStep{
		kind:         kind,
		name:         r.Title,
		label:        label,
		instructions: ins,
		editor:       editor,
	}, nil
}

// NewGrammarStep corrects grammar, spelling and punctuation only.
func NewGrammarStep(r *role.Role, editor llm.Editor) (*EditStep, error) {
	return newEditStep(pipeline.KindGrammar, r, role.Params{}, editor)
}

// NewClarityStep rewrites confusing, wordy or ambiguous sentences.
func NewClarityStep(r *role.Role, editor llm.Editor) (*EditStep, error) {
	return newEditStep(pipeline.KindClarity, r, role.Params{}, editor)
}

// NewToneStep rewrites the text in tone.
func NewToneStep(r *role.Role, tone Tone, editor llm.Editor) (*EditStep, error) {
	return newEditStep(pipeline.KindTone, r, role.Params{Tone: string(tone), ToneTitle: tone.Title()}, editor)
}

func (s *EditStep) Kind() pipeline.Kind { return s.kind }

func (s *EditStep) Name() string { return s.name }

func (s *EditStep) Label() string { return s.label }

// Instructions returns the rendered instructions sent to the editor.
func (s *EditStep) Instructions() string { return s.instructions }

// Produce implements pipeline.Step.
func (s *EditStep) Produce(ctx context.Context, input string) (*pipeline.StepResult, error) {
	resp, err := s.editor.Edit(ctx, s.instructions, input)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, llm.ErrMalformedResponse
	}
	return &pipeline.StepResult{
		EditedText: resp.EditedText,
		Comments:   resp.Comments,
	}, nil
}
