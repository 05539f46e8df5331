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
	"fmt"

	"github.com/cloudwego/abwriter/internal/pipeline"
	"github.com/cloudwego/abwriter/llm"
	"github.com/cloudwego/abwriter/llm/role"
)

// Builder creates EditSteps from the roles of a registry. Each step looks up
// the role named after its kind.
type Builder struct {
	editor llm.Editor
	roles  *role.Registry
}

var _ pipeline.StepBuilder = (*Builder)(nil)

// NewBuilder returns a Builder. roles must be initialized.
func NewBuilder(editor llm.Editor, roles *role.Registry) *Builder {
	return &Builder{editor: editor, roles: roles}
}

// Build implements pipeline.StepBuilder.
func (b *Builder) Build(kind pipeline.Kind, req pipeline.Request) (pipeline.Step, error) {
	r, err := b.roles.Get(string(kind))
	if err != nil {
		return nil, err
	}
	switch kind {
	case pipeline.KindGrammar:
		return NewGrammarStep(r, b.editor)
	case pipeline.KindClarity:
		return NewClarityStep(r, b.editor)
	case pipeline.KindTone:
		tone, err := ParseTone(req.Tone)
		if err != nil {
			return nil, err
		}
		return NewToneStep(r, tone, b.editor)
	}
	return nil, fmt.Errorf("unsupported step kind %q", kind)
}
