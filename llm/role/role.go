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

package role

import (
	"github.com/cloudwego/abwriter/llm/prompt"
)

// Role 表示一个编辑角色（grammar / clarity / tone）
type Role struct {
	// 必需字段
	Name        string // 1-64字符，小写+数字+连字符，与目录名一致
	Title       string // 评论小节标题，如 "Grammar"
	Description string // 1-1024字符

	// 可选字段
	Agent string // 展示名，如 "Grammar Fixer"
	Label string // 进度提示模板

	// 指令正文（Go text/template）
	Instructions string

	// 元信息
	Source   RoleSource
	BasePath string
	Path     string // ROLE.md 文件路径

	instructionsTpl *prompt.Template
	labelTpl        *prompt.Template
}

// Params is the data role templates are executed with.
type Params struct {
	Tone      string // e.g. "casual"
	ToneTitle string // e.g. "Casual"
}

// Render executes the instruction and label templates.
func (r *Role) Render(p Params) (instructions string, label string, err error) {
	ins, err := r.instructionsTpl.Execute(p)
	if err != nil {
		return "", "", err
	}
	lbl, err := r.labelTpl.Execute(p)
	if err != nil {
		return "", "", err
	}
	return ins.String(), lbl.String(), nil
}

// RoleSource 表示 role 的来源类型
type RoleSource int

const (
	SourceEmbedded RoleSource = iota // 内置
	SourceLocal                      // 本地目录
)

// String 返回 role source 的字符串表示
func (s RoleSource) String() string {
	switch s {
	case SourceEmbedded:
		return "embedded"
	case SourceLocal:
		return "local"
	default:
		return "unknown"
	}
}
