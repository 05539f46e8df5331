/**
 * Copyright 2025 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cloudwego/abwriter/diff"
	"github.com/cloudwego/abwriter/internal/pipeline"
	"github.com/cloudwego/abwriter/internal/pipeline/steps"
	"github.com/cloudwego/abwriter/internal/render"
	"github.com/cloudwego/abwriter/internal/utils"
	"github.com/cloudwego/abwriter/llm"
	"github.com/cloudwego/abwriter/llm/role"
)

const (
	ToolImproveWriting = "improve_writing"
	DescImproveWriting = "Polish a text with grammar, clarity and tone passes. Passes always run in the order grammar, clarity, tone. Returns the final text, a word-level diff against the original and the commentary of each pass."
	ToolDiffText       = "diff_text"
	DescDiffText       = "Compute a word-level diff between two texts. Removed words are marked [-like this-], added words {+like this+}."
)

type ImproveWritingReq struct {
	Text  string   `json:"text" jsonschema:"required,description=the text to improve"`
	Steps []string `json:"steps" jsonschema:"required,description=passes to run: grammar and/or clarity and/or tone"`
	Tone  string   `json:"tone,omitempty" jsonschema:"description=target tone for the tone pass (formal casual professional friendly technical simple persuasive empathetic humorous inspirational),default=formal"`
}

type ImproveWritingResp struct {
	FinalText string     `json:"final_text"`
	Diff      string     `json:"diff"`
	Stats     diff.Stats `json:"stats"`
	Comments  string     `json:"comments,omitempty"`
}

type DiffTextReq struct {
	Original string `json:"original" jsonschema:"required,description=the text before editing"`
	Edited   string `json:"edited" jsonschema:"required,description=the text after editing"`
}

type DiffTextResp struct {
	Diff  string     `json:"diff"`
	Spans diff.Spans `json:"spans"`
	Stats diff.Stats `json:"stats"`
}

var (
	SchemaImproveWriting = reflectSchema(&ImproveWritingReq{})
	SchemaDiffText       = reflectSchema(&DiffTextReq{})
)

func reflectSchema(v any) json.RawMessage {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	js, err := json.Marshal(r.Reflect(v))
	if err != nil {
		panic(err)
	}
	return js
}

func NewTool[R any, T any](name string, desc string, schema json.RawMessage, handler func(ctx context.Context, req R) (*T, error)) Tool {
	return Tool{
		Tool: mcp.NewToolWithRawSchema(name, desc, schema),
		Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var req R
			if err := request.BindArguments(&req); err != nil {
				return nil, err
			}
			var final string
			var isError bool
			if resp, err := handler(ctx, req); err != nil {
				isError = true
				final = err.Error()
			} else if js, err := utils.MarshalJSONBytes(resp); err != nil {
				isError = true
				final = err.Error()
			} else {
				final = string(js)
			}
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent(final),
				},
				IsError: isError,
			}, nil
		},
	}
}

type handler struct {
	editor llm.Editor
	roles  *role.Registry
}

func (h *handler) tools() []Tool {
	return []Tool{
		NewTool(ToolImproveWriting, DescImproveWriting, SchemaImproveWriting, h.ImproveWriting),
		NewTool(ToolDiffText, DescDiffText, SchemaDiffText, h.DiffText),
	}
}

func (h *handler) ImproveWriting(ctx context.Context, req ImproveWritingReq) (*ImproveWritingResp, error) {
	if h.editor == nil || h.roles == nil {
		return nil, fmt.Errorf("no model configured")
	}
	kinds := make([]pipeline.Kind, 0, len(req.Steps))
	for _, s := range req.Steps {
		k, err := pipeline.ParseKind(s)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	preq := pipeline.Request{Text: req.Text, Steps: kinds, Tone: req.Tone}
	res, err := pipeline.Run(ctx, preq, steps.NewBuilder(h.editor, h.roles), nil)
	if err != nil {
		return nil, err
	}
	rep := render.NewReport(req.Text, res)
	return &ImproveWritingResp{
		FinalText: rep.Final,
		Diff:      render.FormatDiff(rep.Spans, true),
		Stats:     rep.Stats,
		Comments:  rep.Comments,
	}, nil
}

func (h *handler) DiffText(ctx context.Context, req DiffTextReq) (*DiffTextResp, error) {
	old, new := diff.Tokenize(req.Original), diff.Tokenize(req.Edited)
	ops := diff.Diff(old, new)
	spans := diff.Render(ops, old, new)
	return &DiffTextResp{
		Diff:  render.FormatDiff(spans, true),
		Spans: spans,
		Stats: diff.Count(ops, old, new),
	}, nil
}

func rolePrompt(r *role.Role) mcp.Prompt {
	opts := []mcp.PromptOption{
		mcp.WithPromptDescription(r.Description),
		mcp.WithArgument("text", mcp.ArgumentDescription("the text to edit"), mcp.RequiredArgument()),
	}
	if r.Name == string(pipeline.KindTone) {
		opts = append(opts, mcp.WithArgument("tone", mcp.ArgumentDescription("target tone, default formal")))
	}
	return mcp.NewPrompt(r.Name, opts...)
}

func (h *handler) handleRolePrompt(r *role.Role) server.PromptHandlerFunc {
	return func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		tone, err := steps.ParseTone(request.Params.Arguments["tone"])
		if err != nil {
			return nil, err
		}
		ins, _, err := r.Render(role.Params{Tone: string(tone), ToneTitle: tone.Title()})
		if err != nil {
			return nil, err
		}
		text := ins + "\n\n" + llm.OutputAppendix()
		if input := request.Params.Arguments["text"]; input != "" {
			text += "\n\n# Text\n\n" + input
		}
		return &mcp.GetPromptResult{
			Description: r.Description,
			Messages: []mcp.PromptMessage{
				{
					Role: mcp.RoleUser,
					Content: mcp.TextContent{
						Type: "text",
						Text: text,
					},
				},
			},
		}, nil
	}
}
