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

// Package render presents an edit run as terminal text, HTML or JSON.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/abwriter/diff"
	"github.com/cloudwego/abwriter/internal/pipeline"
	"github.com/cloudwego/abwriter/internal/utils"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// ParseFormat validates s; an empty s is FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatHTML, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, html or json)", s)
}

// Report is everything shown to the user after a run.
type Report struct {
	Original  string                `json:"original"`
	Final     string                `json:"final_text"`
	Spans     diff.Spans            `json:"diff"`
	Stats     diff.Stats            `json:"stats"`
	Sections  []pipeline.Section    `json:"sections,omitempty"`
	Comments  string                `json:"comments,omitempty"`
	Revisions []pipeline.StepRecord `json:"revisions,omitempty"`
}

// NewReport diffs the original text against the result of the run.
func NewReport(original string, res *pipeline.Result) *Report {
	old, new := diff.Tokenize(original), diff.Tokenize(res.FinalText)
	ops := diff.Diff(old, new)
	return &Report{
		Original:  original,
		Final:     res.FinalText,
		Spans:     diff.Render(ops, old, new),
		Stats:     diff.Count(ops, old, new),
		Sections:  res.Sections,
		Comments:  res.Comments(),
		Revisions: res.Revisions,
	}
}

// Summary is a one-line description of Stats.
func (r *Report) Summary() string {
	if !r.Stats.Changed() {
		return fmt.Sprintf("No changes (%d words)", r.Stats.Unchanged)
	}
	return fmt.Sprintf("%d words added, %d removed, %d unchanged", r.Stats.Added, r.Stats.Removed, r.Stats.Unchanged)
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	data, err := utils.MarshalJSONIndent(r)
	if err != nil {
		return utils.WrapError(err, "marshal report")
	}
	_, err = w.Write(data)
	return err
}

// Options controls Write.
type Options struct {
	Format Format
	Plain  bool // text only: no colors, diff marked with [-removed-] and {+added+}
	NoDiff bool // omit the diff section
}

// Write renders r in the requested format.
func Write(w io.Writer, r *Report, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatHTML:
		return WriteHTML(w, r, opts)
	}
	return WriteText(w, r, opts)
}
