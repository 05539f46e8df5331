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

import "testing"

func TestTemplate_Execute(t *testing.T) {
	tpl, err := ParseTemplate("tone", "Rewrite text to match the requested tone: {{.Tone}}.\n")
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	p, err := tpl.Execute(map[string]string{"Tone": "casual"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := p.String(); got != "Rewrite text to match the requested tone: casual." {
		t.Errorf("got %q", got)
	}
	if tpl.Name() != "tone" {
		t.Errorf("name: got %q", tpl.Name())
	}
}

func TestTemplate_MissingKey(t *testing.T) {
	tpl, err := ParseTemplate("tone", "{{.Tone}}")
	if err != nil {
		t.Fatalf("ParseTemplate: %v", err)
	}
	if _, err := tpl.Execute(map[string]string{}); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestParseTemplate_Invalid(t *testing.T) {
	if _, err := ParseTemplate("bad", "{{.Tone"); err == nil {
		t.Error("expected parse error")
	}
}

func TestTextPrompt(t *testing.T) {
	if NewTextPrompt("hi").String() != "hi" {
		t.Error("TextPrompt round trip")
	}
}
