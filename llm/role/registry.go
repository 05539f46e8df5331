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
	"os"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/cloudwego/abwriter/llm/log"
	"github.com/cloudwego/abwriter/llm/role/embedded"
)

// ErrRoleNotFound is returned by Registry.Get for unknown names.
var ErrRoleNotFound = errors.New("role not found")

// Registry 管理所有可用的 roles。本地 role 按 name 覆盖内置 role。
type Registry struct {
	mu       sync.RWMutex
	roles    map[string]*Role
	localDir string
	loader   *Loader
}

// NewRegistry 创建新的 Registry
func NewRegistry() *Registry {
	return &Registry{
		roles:  make(map[string]*Role),
		loader: NewLoader(),
	}
}

// SetLocalDir 设置本地 roles 目录
func (r *Registry) SetLocalDir(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.localDir = dir
}

// Initialize 加载内置 roles，然后加载本地目录（如果设置）
func (r *Registry) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, path := range embedded.RolePaths() {
		role, err := r.loader.LoadFromFS(embedded.EmbeddedFS, path, SourceEmbedded)
		if err != nil {
			return fmt.Errorf("built-in role %s: %w", path, err)
		}
		r.roles[role.Name] = role
	}

	if r.localDir == "" {
		return nil
	}
	if _, err := os.Stat(r.localDir); err != nil {
		return fmt.Errorf("roles directory %s: %w", r.localDir, err)
	}
	locals, err := r.loader.LoadAllFromDir(r.localDir, SourceLocal)
	if err != nil {
		return fmt.Errorf("load roles from %s: %w", r.localDir, err)
	}
	for _, role := range locals {
		if err := ValidateOverride(role.Name, r.roles); err != nil {
			log.Error("Skipping role in %s: %v", role.BasePath, err)
			continue
		}
		log.Debug("Local role %s overrides built-in", role.Name)
		r.roles[role.Name] = role
	}
	return nil
}

// Get 按名称获取 role
func (r *Registry) Get(name string) (*Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.roles[name]
	if !ok {
		return nil, errors.Wrapf(ErrRoleNotFound, "%q", name)
	}
	return role, nil
}

// List 返回按名称排序的所有 roles
func (r *Registry) List() []*Role {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
