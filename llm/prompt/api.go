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

package prompt

import (
	"bytes"
	"strings"
	"text/template"
)

type Prompt interface {
	String() string
}

type TextPrompt string

func (p TextPrompt) String() string {
	return string(p)
}

func NewTextPrompt(content string) Prompt {
	return TextPrompt(content)
}

// Template is a parsed Go text/template prompt. Executing it against
// different data yields different prompts.
type Template struct {
	name string
	tpl  *template.Template
}

// ParseTemplate parses src. Referencing a missing key is an error at
// execution time.
func ParseTemplate(name, src string) (*Template, error) {
	tpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, err
	}
	return &Template{name: name, tpl: tpl}, nil
}

// Execute renders the template with data.
func (t *Template) Execute(data any) (Prompt, error) {
	var buf bytes.Buffer
	if err := t.tpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return TextPrompt(strings.TrimSpace(buf.String())), nil
}

// Name returns the template name.
func (t *Template) Name() string { return t.name }
