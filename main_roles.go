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

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cloudwego/abwriter/llm/log"
)

// handleRolesCommand 处理 roles 子命令
func handleRolesCommand(opts *options, args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: abwriter roles <subcommand> [options]\n")
		fmt.Fprintf(os.Stderr, "Subcommands:\n")
		fmt.Fprintf(os.Stderr, "  list                    List all available roles\n")
		fmt.Fprintf(os.Stderr, "  show <name>             Show role details\n")
		os.Exit(1)
	}

	subcommand := strings.ToLower(args[0])

	// 初始化 registry
	registry, err := loadRoles(opts.rolesDir)
	if err != nil {
		log.Error("Failed to initialize role registry: %v", err)
		os.Exit(1)
	}

	switch subcommand {
	case "list":
		roles := registry.List()
		fmt.Printf("Available roles (%d):\n\n", len(roles))
		for _, r := range roles {
			fmt.Printf("  %s (%s)\n", r.Name, r.Source.String())
			fmt.Printf("    %s\n", r.Description)
			fmt.Println()
		}

	case "show":
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "Usage: abwriter roles show <name>\n")
			os.Exit(1)
		}
		name := args[1]
		r, err := registry.Get(name)
		if err != nil {
			log.Error("Role '%s' not found: %v", name, err)
			os.Exit(1)
		}

		fmt.Printf("Role: %s\n", r.Name)
		fmt.Printf("Title: %s\n", r.Title)
		fmt.Printf("Agent: %s\n", r.Agent)
		fmt.Printf("Source: %s\n", r.Source.String())
		if r.Path != "" {
			fmt.Printf("Path: %s\n", r.Path)
		}
		fmt.Printf("Description: %s\n\n", r.Description)
		fmt.Printf("Instructions:\n%s\n", r.Instructions)

	default:
		fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n", subcommand)
		os.Exit(1)
	}
}
