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
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cloudwego/abwriter/llm"
	"github.com/cloudwego/abwriter/llm/log"
	"github.com/cloudwego/abwriter/llm/role"
)

type ServerOptions struct {
	ServerName    string
	ServerVersion string
	Verbose       bool
	Editor        llm.Editor     // required by improve_writing
	Roles         *role.Registry // initialized registry
}

type Server struct {
	Server *server.MCPServer
	opts   ServerOptions
}

// Tool pairs a tool definition with its handler.
type Tool struct {
	mcp.Tool
	Handler server.ToolHandlerFunc
}

// NewServer registers the writing tools and one prompt per role.
func NewServer(opts ServerOptions) *Server {
	if opts.Verbose {
		log.SetLogLevel(log.DebugLevel)
	}
	svr := server.NewMCPServer(opts.ServerName, opts.ServerVersion,
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	)

	h := &handler{editor: opts.Editor, roles: opts.Roles}
	for _, t := range h.tools() {
		svr.AddTool(t.Tool, t.Handler)
	}
	if opts.Roles != nil {
		for _, r := range opts.Roles.List() {
			svr.AddPrompt(rolePrompt(r), h.handleRolePrompt(r))
		}
	}
	return &Server{Server: svr, opts: opts}
}

// ServeStdio serves on stdin/stdout until it is closed.
func (s *Server) ServeStdio() error {
	log.Info("MCP server %s %s listening on stdio", s.opts.ServerName, s.opts.ServerVersion)
	return server.ServeStdio(s.Server)
}
