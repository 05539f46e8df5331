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
	"crypto/sha256"
	"encoding/hex"
)

// Snapshot is an immutable copy of the text between two steps.
type Snapshot struct {
	Hash string // hex-encoded sha256 of Text
	Text string
}

// NewSnapshot creates a snapshot of text.
func NewSnapshot(text string) Snapshot {
	h := sha256.Sum256([]byte(text))
	return Snapshot{
		Hash: hex.EncodeToString(h[:]),
		Text: text,
	}
}

// Same reports whether both snapshots hold identical text.
func (s Snapshot) Same(o Snapshot) bool {
	return s.Hash == o.Hash
}
