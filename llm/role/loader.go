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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cloudwego/abwriter/llm/log"
	"github.com/cloudwego/abwriter/llm/prompt"
)

const (
	RoleFileName         = "ROLE.md"
	FrontMatterDelimiter = "---"
)

// Loader 负责加载和解析 ROLE.md 文件
type Loader struct{}

// NewLoader 创建新的 Loader
func NewLoader() *Loader {
	return &Loader{}
}

// ParseRole 解析 ROLE.md 内容。basePath 是 role 所在目录，目录名必须等于 name。
func (l *Loader) ParseRole(data []byte, source RoleSource, basePath string) (*Role, error) {
	frontmatter, body, err := l.extractFrontmatter(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to extract frontmatter: %w", err)
	}

	var meta struct {
		Name        string `yaml:"name"`
		Title       string `yaml:"title"`
		Agent       string `yaml:"agent"`
		Label       string `yaml:"label"`
		Description string `yaml:"description"`
	}
	if err := yaml.Unmarshal([]byte(frontmatter), &meta); err != nil {
		return nil, fmt.Errorf("failed to parse YAML frontmatter: %w", err)
	}

	if err := ValidateName(meta.Name, basePath); err != nil {
		return nil, err
	}
	if err := ValidateTitle(meta.Title); err != nil {
		return nil, err
	}
	if err := ValidateDescription(meta.Description); err != nil {
		return nil, err
	}
	if err := ValidateInstructions(meta.Name, body); err != nil {
		return nil, err
	}

	if meta.Agent == "" {
		meta.Agent = meta.Title
	}
	if meta.Label == "" {
		meta.Label = "Running " + meta.Agent + "..."
	}

	insTpl, err := prompt.ParseTemplate(meta.Name, body)
	if err != nil {
		return nil, fmt.Errorf("role %s: invalid instructions template: %w", meta.Name, err)
	}
	labelTpl, err := prompt.ParseTemplate(meta.Name+"-label", meta.Label)
	if err != nil {
		return nil, fmt.Errorf("role %s: invalid label template: %w", meta.Name, err)
	}

	return &Role{
		Name:            meta.Name,
		Title:           meta.Title,
		Description:     meta.Description,
		Agent:           meta.Agent,
		Label:           meta.Label,
		Instructions:    strings.TrimSpace(body),
		Source:          source,
		BasePath:        basePath,
		Path:            filepath.Join(basePath, RoleFileName),
		instructionsTpl: insTpl,
		labelTpl:        labelTpl,
	}, nil
}

// LoadFromDir 从目录加载 role（查找 ROLE.md）
func (l *Loader) LoadFromDir(dir string, source RoleSource) (*Role, error) {
	path := filepath.Join(dir, RoleFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read role file %s: %w", path, err)
	}
	return l.ParseRole(data, source, dir)
}

// LoadFromFS 从 fs.FS 加载 role，path 指向 ROLE.md
func (l *Loader) LoadFromFS(fsys fs.FS, path string, source RoleSource) (*Role, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read role %s: %w", path, err)
	}
	return l.ParseRole(data, source, filepath.Dir(path))
}

// LoadAllFromDir 递归查找所有包含 ROLE.md 的目录。无效 role 记录日志后跳过。
func (l *Loader) LoadAllFromDir(rootDir string, source RoleSource) ([]*Role, error) {
	var roles []*Role
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if _, err := os.Stat(filepath.Join(path, RoleFileName)); err != nil {
			return nil
		}
		r, err := l.LoadFromDir(path, source)
		if err != nil {
			log.Error("Skipping invalid role in %s: %v", path, err)
			return nil
		}
		roles = append(roles, r)
		return nil
	})
	return roles, err
}

// extractFrontmatter 从 markdown 文件中提取 YAML frontmatter
func (l *Loader) extractFrontmatter(content string) (frontmatter string, body string, err error) {
	content = strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))
	if !strings.HasPrefix(content, FrontMatterDelimiter) {
		return "", content, fmt.Errorf("no frontmatter found (expected '---' at start)")
	}

	lines := strings.Split(content, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == FrontMatterDelimiter {
			frontmatter = strings.Join(lines[1:i], "\n")
			body = strings.Join(lines[i+1:], "\n")
			return strings.TrimSpace(frontmatter), strings.TrimSpace(body), nil
		}
	}
	return "", content, fmt.Errorf("frontmatter not closed")
}
