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

package diff

import "strings"

// Tag is the presentational class of a span.
type Tag string

const (
	TagNone    Tag = "none"
	TagRemoved Tag = "removed"
	TagAdded   Tag = "added"
)

// Span is a run of tokens sharing one tag.
type Span struct {
	Text   string  `json:"text"`
	Tag    Tag     `json:"tag"`
	Tokens []Token `json:"-"`
}

func newSpan(tag Tag, tokens []Token) Span {
	return Span{Text: Detokenize(tokens), Tag: tag, Tokens: tokens}
}

// Spans is a rendered diff.
type Spans []Span

// Render turns an edit script into tagged spans. A replace run yields its
// removed span immediately followed by its added span.
func Render(ops []OpCode, old, new []Token) Spans {
	spans := make(Spans, 0, len(ops))
	for _, op := range ops {
		switch op.Kind {
		case Equal:
			spans = append(spans, newSpan(TagNone, old[op.I1:op.I2]))
		case Delete:
			spans = append(spans, newSpan(TagRemoved, old[op.I1:op.I2]))
		case Insert:
			spans = append(spans, newSpan(TagAdded, new[op.J1:op.J2]))
		case Replace:
			spans = append(spans,
				newSpan(TagRemoved, old[op.I1:op.I2]),
				newSpan(TagAdded, new[op.J1:op.J2]),
			)
		}
	}
	return spans
}

// RenderDiff tokenizes both texts, diffs them and renders the result.
func RenderDiff(original, final string) Spans {
	old, new := Tokenize(original), Tokenize(final)
	return Render(Diff(old, new), old, new)
}

// Source reassembles the old text from unchanged and removed spans.
func (s Spans) Source() string {
	return s.collect(TagAdded)
}

// Target reassembles the new text from unchanged and added spans.
func (s Spans) Target() string {
	return s.collect(TagRemoved)
}

func (s Spans) collect(skip Tag) string {
	var tokens []Token
	for _, sp := range s {
		if sp.Tag != skip {
			tokens = append(tokens, sp.Tokens...)
		}
	}
	return Detokenize(tokens)
}

// Tagged returns the number of spans carrying a tag other than TagNone.
func (s Spans) Tagged() int {
	n := 0
	for _, sp := range s {
		if sp.Tag != TagNone {
			n++
		}
	}
	return n
}

// Join formats every span with format and concatenates the results,
// separating neighbours by a single space unless an unchanged newline sits
// at the boundary. A newline inside a removed or added span is part of the
// change and keeps the surrounding words apart.
func (s Spans) Join(format func(Span) string) string {
	var sb strings.Builder
	for i, sp := range s {
		if i > 0 && needsSpace(s[i-1], sp) {
			sb.WriteByte(' ')
		}
		sb.WriteString(format(sp))
	}
	return sb.String()
}

func needsSpace(prev, next Span) bool {
	if len(prev.Tokens) == 0 || len(next.Tokens) == 0 {
		return false
	}
	if prev.Tag == TagNone && prev.Tokens[len(prev.Tokens)-1].IsNewline() {
		return false
	}
	if next.Tag == TagNone && next.Tokens[0].IsNewline() {
		return false
	}
	return true
}
