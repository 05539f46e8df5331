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

package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/schema"

	"github.com/cloudwego/abwriter/internal/utils"
	"github.com/cloudwego/abwriter/llm/log"
)

var _ Editor = (*ChatEditor)(nil)

// ChatEditor implements Editor on top of a chat model. Transient transport
// failures are retried with exponential backoff; everything else is returned
// to the caller at once.
type ChatEditor struct {
	name    string
	model   ChatModel
	retries int
	timeout time.Duration
	backoff func(attempt int) time.Duration
}

type ChatEditorOptions struct {
	Retries int           `json:"retries"` // Number of retries, default: 3
	Timeout time.Duration `json:"timeout"` // Request timeout, default: 600s
}

func NewChatEditor(name string, cm ChatModel, opts ChatEditorOptions) *ChatEditor {
	retries := opts.Retries
	if retries == 0 {
		retries = DefaultRetries
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &ChatEditor{
		name:    name,
		model:   cm,
		retries: retries,
		timeout: timeout,
		backoff: expBackoff,
	}
}

// NewEditorFromConfig builds the chat model described by cfg and wraps it.
func NewEditorFromConfig(ctx context.Context, cfg ModelConfig) (*ChatEditor, error) {
	cfg = cfg.WithDefaults()
	cm, err := NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	name := cfg.Name
	if name == "" {
		name = string(cfg.APIType)
	}
	return NewChatEditor(name, cm, ChatEditorOptions{Retries: cfg.Retries, Timeout: cfg.Timeout}), nil
}

// expBackoff waits 1s, 2s, 4s... capped at 10s.
func expBackoff(attempt int) time.Duration {
	wait := time.Duration(1<<uint(attempt-1)) * time.Second
	if wait > 10*time.Second {
		wait = 10 * time.Second
	}
	return wait
}

func buildMessages(instructions, input string) []*schema.Message {
	sys := strings.TrimSpace(instructions) + "\n\n" + OutputAppendix()
	return []*schema.Message{
		schema.SystemMessage(sys),
		schema.UserMessage(input),
	}
}

func (e *ChatEditor) Edit(ctx context.Context, instructions string, input string) (*EditResponse, error) {
	msgs := buildMessages(instructions, input)
	log.Debug("[User] %s", input)

	ctx = callbacks.InitCallbacks(ctx, &callbacks.RunInfo{
		Name:      e.name,
		Component: components.ComponentOfChatModel,
	}, CallbackHandler{})

	var lastErr error
	for attempt := 0; attempt <= e.retries; attempt++ {
		if attempt > 0 {
			log.Info("Retrying LLM call (attempt %d/%d)...", attempt+1, e.retries+1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(e.backoff(attempt)):
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, e.timeout)
		out, err := e.model.Generate(attemptCtx, msgs)
		cancel()
		if err == nil {
			log.Debug("[Assistant] %s", out.Content)
			return ParseEditResponse(out.Content)
		}

		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !isRetryable(err) {
			log.Error("Non-retryable error occurred: %v", err)
			return nil, utils.WrapError(err, "%s generate error", e.name)
		}
		log.Info("Retryable error occurred (attempt %d/%d): %v", attempt+1, e.retries+1, err)
	}

	return nil, utils.WrapError(fmt.Errorf("failed after %d retries: %w", e.retries+1, lastErr), "%s generate error", e.name)
}

// isRetryable matches network-level failures: timeouts and connection resets.
func isRetryable(err error) bool {
	s := err.Error()
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection reset") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "operation timed out") ||
		strings.Contains(s, "context deadline exceeded") ||
		strings.Contains(s, "read tcp") ||
		strings.Contains(s, "write tcp")
}
