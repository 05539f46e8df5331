/**
 * Copyright 2025 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/abwriter/internal/pipeline"
)

func TestSelectedSteps(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []pipeline.Kind
	}{
		{"default", nil, []pipeline.Kind{pipeline.KindGrammar}},
		{"tone only", []string{"--tone", "casual"}, []pipeline.Kind{pipeline.KindTone}},
		{"flags", []string{"--tone=formal", "--clarity", "--grammar"}, pipeline.CanonicalOrder},
		{"steps list", []string{"-s", "tone,clarity"}, []pipeline.Kind{pipeline.KindClarity, pipeline.KindTone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts options
			flags := newFlags(&opts)
			require.NoError(t, flags.Parse(tt.args))
			opts.toneChosen = flags.Changed("tone")
			got, err := selectedSteps(&opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectedSteps_Unknown(t *testing.T) {
	_, err := selectedSteps(&options{steps: []string{"spelling"}})
	assert.Error(t, err)
}

func TestLoadEditor_MissingModel(t *testing.T) {
	t.Setenv("ABWRITER_MODEL_TYPE", "")
	t.Setenv("ABWRITER_MODEL", "")
	_, err := loadEditor(t.Context(), &options{})
	assert.Error(t, err)
	_, err = loadEditor(t.Context(), &options{modelType: "openai"})
	assert.Error(t, err)
}

func TestLoadRoles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	reg, err := loadRoles("")
	require.NoError(t, err)
	assert.Len(t, reg.List(), 3)
	_, err = loadRoles(t.TempDir() + "/missing")
	assert.Error(t, err)
}
