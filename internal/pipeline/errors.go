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

package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyInput is returned before any step runs when the text is blank
	// and at least one step is selected.
	ErrEmptyInput = errors.New("input text is empty")
	// ErrCapability matches every *StepError.
	ErrCapability = errors.New("transformation capability failed")
	// ErrCancelled is returned when the caller cancels between steps.
	ErrCancelled = errors.New("pipeline cancelled")
)

// StepError reports the step that failed and why. The pipeline stops at the
// first StepError; no partial result is returned with it.
type StepError struct {
	Step  string
	Kind  Kind
	Cause error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Cause)
}

func (e *StepError) Unwrap() error { return e.Cause }

func (e *StepError) Is(target error) bool { return target == ErrCapability }

// CancelError wraps the context error observed when a run was cancelled.
type CancelError struct {
	Step  string // the step that did not start or was interrupted
	Cause error
}

func (e *CancelError) Error() string {
	return fmt.Sprintf("%v at step %s: %v", ErrCancelled, e.Step, e.Cause)
}

func (e *CancelError) Unwrap() error { return e.Cause }

func (e *CancelError) Is(target error) bool { return target == ErrCancelled }
