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

// Package source reads the text to edit and hands the result back to the user.
package source

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/pkg/errors"

	"github.com/cloudwego/abwriter/internal/utils"
	"github.com/cloudwego/abwriter/llm/log"
)

// ErrNoClipboard is returned when the Provider has no clipboard access.
var ErrNoClipboard = errors.New("clipboard not available")

// Origin names where the text was read from.
type Origin string

const (
	OriginFile      Origin = "file"
	OriginStdin     Origin = "stdin"
	OriginClipboard Origin = "clipboard"
)

// Provider resolves the input text from a file, piped stdin or the clipboard.
type Provider struct {
	Stdin     io.Reader
	IsPiped   func() bool
	ReadClip  func() (string, error)
	WriteClip func(string) error
}

// New returns a Provider backed by os.Stdin and the system clipboard.
func New() *Provider {
	return &Provider{
		Stdin:     os.Stdin,
		IsPiped:   stdinPiped,
		ReadClip:  clipboard.ReadAll,
		WriteClip: clipboard.WriteAll,
	}
}

func stdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// Read returns the input text. A non-empty path wins ("-" means stdin), then
// an explicit clipboard request, then piped stdin; the clipboard is the
// fallback.
func (p *Provider) Read(path string, fromClipboard bool) (string, Origin, error) {
	switch {
	case path == "-":
		return p.readStdin()
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", OriginFile, utils.WrapError(err, "read input file %s", path)
		}
		log.Debug("Read %d bytes from %s", len(data), path)
		return string(data), OriginFile, nil
	case fromClipboard:
		return p.readClipboard()
	case p.IsPiped != nil && p.IsPiped():
		return p.readStdin()
	}
	return p.readClipboard()
}

func (p *Provider) readStdin() (string, Origin, error) {
	data, err := io.ReadAll(p.Stdin)
	if err != nil {
		return "", OriginStdin, utils.WrapError(err, "failed to read from stdin")
	}
	log.Debug("Read %d bytes from stdin", len(data))
	return string(data), OriginStdin, nil
}

func (p *Provider) readClipboard() (string, Origin, error) {
	if p.ReadClip == nil {
		return "", OriginClipboard, ErrNoClipboard
	}
	content, err := p.ReadClip()
	if err != nil {
		return "", OriginClipboard, utils.WrapError(err, "failed to read from clipboard")
	}
	log.Debug("Read %d bytes from clipboard", len(content))
	return content, OriginClipboard, nil
}

// Copy places text on the clipboard.
func (p *Provider) Copy(text string) error {
	if p.WriteClip == nil {
		return ErrNoClipboard
	}
	return utils.WrapError(p.WriteClip(text), "failed to write to clipboard")
}
