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

import (
	"github.com/pmezard/go-difflib/difflib"
)

// OpKind classifies a contiguous run of an alignment.
type OpKind int

const (
	Equal OpKind = iota
	Delete
	Insert
	Replace
)

func (k OpKind) String() string {
	switch k {
	case Equal:
		return "equal"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	case Replace:
		return "replace"
	default:
		return "unknown"
	}
}

// OpCode covers old[I1:I2] and new[J1:J2]. Delete has an empty new range,
// Insert an empty old range.
type OpCode struct {
	Kind   OpKind
	I1, I2 int
	J1, J2 int
}

// Diff computes the edit script turning old into new using longest matching
// blocks (Ratcliff/Obershelp). The automatic junk heuristic is disabled so
// frequent words such as "the" still anchor matches in long texts. Diff is
// deterministic for identical inputs.
func Diff(old, new []Token) []OpCode {
	if len(old) == 0 && len(new) == 0 {
		return nil
	}
	m := difflib.NewMatcherWithJunk(toStrings(old), toStrings(new), false, nil)
	codes := m.GetOpCodes()
	ops := make([]OpCode, 0, len(codes))
	for _, c := range codes {
		op := OpCode{I1: c.I1, I2: c.I2, J1: c.J1, J2: c.J2}
		switch c.Tag {
		case 'e':
			op.Kind = Equal
		case 'd':
			op.Kind = Delete
		case 'i':
			op.Kind = Insert
		case 'r':
			op.Kind = Replace
		default:
			continue
		}
		ops = append(ops, op)
	}
	return ops
}

// Stats summarizes an edit script in words; newline markers are not counted.
type Stats struct {
	Unchanged int `json:"unchanged"`
	Removed   int `json:"removed"`
	Added     int `json:"added"`
}

// Changed reports whether any word was added or removed.
func (s Stats) Changed() bool { return s.Removed > 0 || s.Added > 0 }

// Count tallies the words covered by ops.
func Count(ops []OpCode, old, new []Token) Stats {
	var s Stats
	for _, op := range ops {
		switch op.Kind {
		case Equal:
			s.Unchanged += words(old[op.I1:op.I2])
		case Delete:
			s.Removed += words(old[op.I1:op.I2])
		case Insert:
			s.Added += words(new[op.J1:op.J2])
		case Replace:
			s.Removed += words(old[op.I1:op.I2])
			s.Added += words(new[op.J1:op.J2])
		}
	}
	return s
}

func words(tokens []Token) int {
	n := 0
	for _, t := range tokens {
		if !t.IsNewline() {
			n++
		}
	}
	return n
}
