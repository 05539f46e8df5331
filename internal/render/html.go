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
	"bytes"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/cloudwego/abwriter/diff"
	"github.com/cloudwego/abwriter/internal/utils"
)

const (
	removedCSS = "color: #f44336; text-decoration: line-through;"
	addedCSS   = "background-color: #c8e6c9; padding: 2px 4px;"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

var reportTpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>abwriter report</title>
<style>
body { font-family: sans-serif; max-width: 52em; margin: 2em auto; color: #222; }
.diff { padding: 1.5em; border: 1px solid #e0e0e0; border-radius: 10px; margin: 1em 0 2em 0; background: white; box-shadow: 0 2px 6px rgba(0,0,0,0.05); line-height: 1.6; }
.summary { color: #777; font-size: 0.9em; }
pre { background: #f6f8fa; padding: 1em; white-space: pre-wrap; }
</style>
</head>
<body>
<h3>{{.HeadingFinal}}</h3>
<div class="final">{{.Final}}</div>
{{- if .Diff}}
<h3>{{.HeadingDiff}}</h3>
<div class="diff">{{.Diff}}</div>
<p class="summary">{{.Summary}}</p>
{{- end}}
{{- if .Comments}}
<h3>{{.HeadingComments}}</h3>
<div class="comments">{{.Comments}}</div>
{{- end}}
<h3>📋 Copy Edited Text</h3>
<pre><code>{{.Raw}}</code></pre>
</body>
</html>
`))

type htmlView struct {
	HeadingFinal    string
	HeadingDiff     string
	HeadingComments string
	Final           template.HTML
	Diff            template.HTML
	Summary         string
	Comments        template.HTML
	Raw             string
}

// MarkSpanHTML formats one span with inline styles. Text is escaped and
// newlines become line breaks.
func MarkSpanHTML(sp diff.Span) string {
	text := strings.ReplaceAll(template.HTMLEscapeString(sp.Text), "\n", "<br>\n")
	switch sp.Tag {
	case diff.TagRemoved:
		return `<span style="` + removedCSS + `">` + text + `</span>`
	case diff.TagAdded:
		return `<span style="` + addedCSS + `">` + text + `</span>`
	}
	return text
}

// FormatDiffHTML renders spans as an HTML fragment.
func FormatDiffHTML(spans diff.Spans) template.HTML {
	return template.HTML(spans.Join(MarkSpanHTML))
}

// MarkdownHTML converts markdown to HTML. Raw HTML in src is dropped.
func MarkdownHTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", utils.WrapError(err, "convert markdown")
	}
	return template.HTML(buf.String()), nil
}

// WriteHTML writes a standalone HTML report.
func WriteHTML(w io.Writer, r *Report, opts Options) error {
	final, err := MarkdownHTML(r.Final)
	if err != nil {
		return err
	}
	v := htmlView{
		HeadingFinal:    headingFinal,
		HeadingDiff:     headingDiff,
		HeadingComments: headingComments,
		Final:           final,
		Summary:         r.Summary(),
		Raw:             r.Final,
	}
	if !opts.NoDiff {
		v.Diff = FormatDiffHTML(r.Spans)
	}
	if r.Comments != "" {
		if v.Comments, err = MarkdownHTML(r.Comments); err != nil {
			return err
		}
	}
	return utils.WrapError(reportTpl.Execute(w, v), "render html report")
}
