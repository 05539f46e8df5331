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

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cloudwego/abwriter/diff"
	"github.com/cloudwego/abwriter/internal/pipeline"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f44336")).Strikethrough(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1b5e20")).Background(lipgloss.Color("#c8e6c9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

const (
	headingFinal    = "✨ Improved Text"
	headingDiff     = "🔍 Detailed Changes"
	headingComments = "💡 Comments / Suggestions"
)

// MarkSpan formats one span for a terminal. Plain mode brackets removed
// text with [- -] and added text with {+ +}.
func MarkSpan(sp diff.Span, plain bool) string {
	switch sp.Tag {
	case diff.TagRemoved:
		if plain {
			return "[-" + sp.Text + "-]"
		}
		return styleLines(removedStyle, sp.Text)
	case diff.TagAdded:
		if plain {
			return "{+" + sp.Text + "+}"
		}
		return styleLines(addedStyle, sp.Text)
	}
	return sp.Text
}

// styleLines styles each line separately so newlines stay outside escapes.
func styleLines(st lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = st.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

// FormatDiff renders spans for a terminal.
func FormatDiff(spans diff.Spans, plain bool) string {
	return spans.Join(func(sp diff.Span) string { return MarkSpan(sp, plain) })
}

func heading(s string, plain bool) string {
	if plain {
		return "## " + s
	}
	return headerStyle.Render(s)
}

// WriteText writes the final text, the diff and the commentary.
func WriteText(w io.Writer, r *Report, opts Options) error {
	var sb strings.Builder
	sb.WriteString(heading(headingFinal, opts.Plain))
	sb.WriteString("\n")
	sb.WriteString(r.Final)
	sb.WriteString("\n\n")

	if !opts.NoDiff {
		sb.WriteString(heading(headingDiff, opts.Plain))
		sb.WriteString("\n")
		sb.WriteString(FormatDiff(r.Spans, opts.Plain))
		sb.WriteString("\n")
		summary := r.Summary()
		if !opts.Plain {
			summary = faintStyle.Render(summary)
		}
		sb.WriteString(summary)
		sb.WriteString("\n\n")
	}

	if r.Comments != "" {
		sb.WriteString(heading(headingComments, opts.Plain))
		sb.WriteString("\n")
		sb.WriteString(r.Comments)
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// ProgressPrinter reports pipeline progress on a terminal, usually stderr.
type ProgressPrinter struct {
	W     io.Writer
	Plain bool
}

var _ pipeline.StepStartListener = (*ProgressPrinter)(nil)

// OnStepStart implements pipeline.StepStartListener.
func (p *ProgressPrinter) OnStepStart(index, total int, label string) {
	fmt.Fprintf(p.W, "Step %d/%d: %s\n", index, total, label)
}

// OnProgress implements pipeline.ProgressSink.
func (p *ProgressPrinter) OnProgress(pr pipeline.Progress) {
	if !pr.Done {
		return
	}
	msg := "✅ " + pr.Label + " Here are your results:"
	if !p.Plain {
		msg = successStyle.Render(msg)
	}
	fmt.Fprintln(p.W, msg)
}
