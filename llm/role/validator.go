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
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// namePattern: 小写字母开头，由小写字母、数字和单个连字符组成
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

const (
	maxNameLen        = 32
	maxTitleLen       = 64
	maxDescriptionLen = 1024
)

// ToneRoleName 是唯一带参数的 role，其指令必须引用 {{.Tone}}
const ToneRoleName = "tone"

// ValidateName 验证 name 是合法标识符并与目录名一致
func ValidateName(name string, dirName string) error {
	if len(name) > maxNameLen {
		return fmt.Errorf("role name %q is longer than %d characters", name, maxNameLen)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("role name %q must be lowercase letters and digits separated by single hyphens", name)
	}
	if base := filepath.Base(dirName); name != base {
		return fmt.Errorf("role name %q must match directory name %q", name, base)
	}
	return nil
}

func validateField(field, value string, max int, singleLine bool) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("role %s cannot be empty", field)
	}
	if len(value) > max {
		return fmt.Errorf("role %s must be at most %d characters, got %d", field, max, len(value))
	}
	if singleLine && strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("role %s must be a single line", field)
	}
	return nil
}

// ValidateTitle 验证 title：评论小节标题，单行
func ValidateTitle(title string) error {
	return validateField("title", title, maxTitleLen, true)
}

// ValidateDescription 验证 description
func ValidateDescription(desc string) error {
	return validateField("description", desc, maxDescriptionLen, false)
}

// ValidateInstructions 验证指令正文非空；tone role 必须使用所选语气
func ValidateInstructions(name string, body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("role instructions cannot be empty")
	}
	if name == ToneRoleName && !strings.Contains(body, ".Tone") {
		return fmt.Errorf("role %s: instructions must reference {{.Tone}}", name)
	}
	return nil
}

// ValidateOverride 本地 role 只能覆盖内置 role，未知名称不会被任何编辑步骤使用
func ValidateOverride(name string, builtin map[string]*Role) error {
	if _, ok := builtin[name]; !ok {
		names := make([]string, 0, len(builtin))
		for n := range builtin {
			names = append(names, n)
		}
		sort.Strings(names)
		return fmt.Errorf("local role %q does not override a built-in role (%s)", name, strings.Join(names, ", "))
	}
	return nil
}
