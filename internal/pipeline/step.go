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
	"sort"
	"strings"
)

// Kind identifies an editing pass.
type Kind string

const (
	KindGrammar Kind = "grammar"
	KindClarity Kind = "clarity"
	KindTone    Kind = "tone"
)

// CanonicalOrder is the fixed execution order of the editing passes. Later
// passes assume earlier cleanup has already happened, so the order a caller
// selects steps in is ignored and cannot be configured.
var CanonicalOrder = []Kind{KindGrammar, KindClarity, KindTone}

// ParseKind maps a user-facing name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grammar", "fix-grammar":
		return KindGrammar, nil
	case "clarity", "improve-clarity":
		return KindClarity, nil
	case "tone", "adjust-tone":
		return KindTone, nil
	}
	return "", fmt.Errorf("unknown step %q (want one of grammar, clarity, tone)", s)
}

func rank(k Kind) int {
	for i, c := range CanonicalOrder {
		if c == k {
			return i
		}
	}
	return len(CanonicalOrder)
}

// Plan deduplicates kinds and sorts them into CanonicalOrder.
func Plan(kinds []Kind) []Kind {
	seen := make(map[Kind]bool, len(kinds))
	out := make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return rank(out[i]) < rank(out[j]) })
	return out
}

// StepResult is the output of one step. An empty Comments means the step
// had nothing to say.
type StepResult struct {
	EditedText string
	Comments   string
}

// Step is one text transformation pass.
type Step interface {
	Kind() Kind
	// Name is the display name used as the commentary heading, e.g. "Grammar".
	Name() string
	// Label is the human-readable progress text, e.g. "Running Grammar Fixer...".
	Label() string
	Produce(ctx context.Context, input string) (*StepResult, error)
}

// StepBuilder constructs the Step for kind from a request.
type StepBuilder interface {
	Build(kind Kind, req Request) (Step, error)
}

// ordered returns steps sorted stably into CanonicalOrder.
func ordered(steps []Step) []Step {
	out := append([]Step(nil), steps...)
	sort.SliceStable(out, func(i, j int) bool { return rank(out[i].Kind()) < rank(out[j].Kind()) })
	return out
}
