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
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownTone is returned for a tone label outside Tones.
var ErrUnknownTone = errors.New("unknown tone")

// Tone is a target tone label, always lower case.
type Tone string

const (
	ToneFormal        Tone = "formal"
	ToneCasual        Tone = "casual"
	ToneProfessional  Tone = "professional"
	ToneFriendly      Tone = "friendly"
	ToneTechnical     Tone = "technical"
	ToneSimple        Tone = "simple"
	TonePersuasive    Tone = "persuasive"
	ToneEmpathetic    Tone = "empathetic"
	ToneHumorous      Tone = "humorous"
	ToneInspirational Tone = "inspirational"
)

// DefaultTone is used when the tone step is selected without a label.
const DefaultTone = ToneFormal

// Tones lists the accepted tone labels in display order.
var Tones = []Tone{
	ToneFormal, ToneCasual, ToneProfessional, ToneFriendly, ToneTechnical,
	ToneSimple, TonePersuasive, ToneEmpathetic, ToneHumorous, ToneInspirational,
}

// ParseTone normalizes s and checks it against Tones. An empty s yields
// DefaultTone.
func ParseTone(s string) (Tone, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultTone, nil
	}
	for _, t := range Tones {
		if string(t) == s {
			return t, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownTone, "%q (want one of %s)", s, strings.Join(ToneNames(), ", "))
}

// ToneNames returns Tones as strings.
func ToneNames() []string {
	out := make([]string, len(Tones))
	for i, t := range Tones {
		out[i] = string(t)
	}
	return out
}

// Title returns the label with its first letter upper-cased, e.g. "Casual".
func (t Tone) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}
