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
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/abwriter/diff"
	"github.com/cloudwego/abwriter/internal/pipeline"
)

func sampleReport() *Report {
	return NewReport("a b c", &pipeline.Result{
		FinalText: "a x c",
		Sections:  []pipeline.Section{{Step: "Grammar", Comments: "Replaced b."}},
	})
}

func TestNewReport(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, diff.Stats{Unchanged: 2, Removed: 1, Added: 1}, r.Stats)
	assert.Equal(t, "#### Grammar\nReplaced b.", r.Comments)
	assert.Equal(t, "1 words added, 1 removed, 2 unchanged", r.Summary())
	require.Len(t, r.Spans, 4)

	same := NewReport("one two", &pipeline.Result{FinalText: "one  two"})
	assert.Equal(t, "No changes (2 words)", same.Summary())
}

func TestWriteText_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(), Options{Format: FormatText, Plain: true}))
	out := buf.String()
	assert.Contains(t, out, "## "+headingFinal+"\na x c\n")
	assert.Contains(t, out, "a [-b-] {+x+} c\n")
	assert.Contains(t, out, "## "+headingComments+"\n#### Grammar\nReplaced b.\n")
}

func TestWriteText_NoDiffNoComments(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport("a", &pipeline.Result{FinalText: "a"})
	require.NoError(t, WriteText(&buf, r, Options{Plain: true, NoDiff: true}))
	assert.NotContains(t, buf.String(), headingDiff)
	assert.NotContains(t, buf.String(), headingComments)
}

func TestWriteText_Styled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleReport(), Options{}))
	out := buf.String()
	assert.Contains(t, out, "x")
	assert.NotContains(t, out, "[-b-]")
}

func TestFormatDiff_Newlines(t *testing.T) {
	spans := diff.RenderDiff("first line\nsecond", "first line\nthird")
	assert.Equal(t, "first line\n[-second-] {+third+}", FormatDiff(spans, true))
}

func TestMarkSpanHTML(t *testing.T) {
	assert.Equal(t, `<span style="`+addedCSS+`">&lt;b&gt;</span>`, MarkSpanHTML(diff.Span{Text: "<b>", Tag: diff.TagAdded}))
	assert.Equal(t, `<span style="`+removedCSS+`">old</span>`, MarkSpanHTML(diff.Span{Text: "old", Tag: diff.TagRemoved}))
	assert.Equal(t, "a<br>\nb", MarkSpanHTML(diff.Span{Text: "a\nb", Tag: diff.TagNone}))
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(), Options{Format: FormatHTML}))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `<span style="`+removedCSS+`">b</span>`)
	assert.Contains(t, out, `<span style="`+addedCSS+`">x</span>`)
	assert.Contains(t, out, "<h4>Grammar</h4>")
	assert.Contains(t, out, "<pre><code>a x c</code></pre>")
}

func TestWriteHTML_EscapesFinalText(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport("hi", &pipeline.Result{FinalText: "hi <script>alert(1)</script>"})
	require.NoError(t, WriteHTML(&buf, r, Options{NoDiff: true}))
	assert.NotContains(t, buf.String(), "<script>")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(), Options{Format: FormatJSON}))
	var got struct {
		Final string `json:"final_text"`
		Diff  []struct {
			Text string `json:"text"`
			Tag  string `json:"tag"`
		} `json:"diff"`
		Stats diff.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "a x c", got.Final)
	require.Len(t, got.Diff, 4)
	assert.Equal(t, "removed", got.Diff[1].Tag)
	assert.Equal(t, 1, got.Stats.Added)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)
	f, err = ParseFormat("HTML")
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, f)
	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := &ProgressPrinter{W: &buf, Plain: true}
	p.OnStepStart(1, 2, "Running Grammar Fixer...")
	p.OnProgress(pipeline.Progress{Index: 1, Total: 2, Label: "Running Grammar Fixer..."})
	p.OnProgress(pipeline.Progress{Index: 2, Total: 2, Label: pipeline.DoneLabel, Done: true})
	assert.Equal(t, "Step 1/2: Running Grammar Fixer...\n✅ All done! Here are your results:\n", buf.String())
}
