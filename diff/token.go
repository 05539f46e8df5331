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

// Package diff computes word-level differences between two texts and renders
// them as tagged spans for a presentation layer to style.
package diff

import "strings"

// Token is a single word or a Newline marker.
type Token string

// Newline is the token standing for a line break.
const Newline Token = "\n"

// IsNewline reports whether t is the line-break marker.
func (t Token) IsNewline() bool { return t == Newline }

// Tokenize splits text into words and newline markers. Runs of other
// whitespace collapse, so Detokenize(Tokenize(s)) equals s with every
// in-line whitespace run replaced by one space and line edges trimmed.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}
	var tokens []Token
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			tokens = append(tokens, Newline)
		}
		for _, w := range strings.Fields(line) {
			tokens = append(tokens, Token(w))
		}
	}
	return tokens
}

// Detokenize joins tokens back into text: words are separated by one space
// and no space is placed next to a newline.
func Detokenize(tokens []Token) string {
	var sb strings.Builder
	for i, t := range tokens {
		if !t.IsNewline() && i > 0 && !tokens[i-1].IsNewline() {
			sb.WriteByte(' ')
		}
		sb.WriteString(string(t))
	}
	return sb.String()
}

// Normalize applies the tokenizer's whitespace rule to text.
func Normalize(text string) string {
	return Detokenize(Tokenize(text))
}

func toStrings(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = string(t)
	}
	return out
}
