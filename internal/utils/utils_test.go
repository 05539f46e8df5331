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

package utils

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWrapError(t *testing.T) {
	if WrapError(nil, "noop") != nil {
		t.Fatal("expected nil for nil error")
	}
	cause := errors.New("boom")
	err := WrapError(cause, "step %d", 2)
	if !errors.Is(err, cause) {
		t.Fatalf("wrapped error lost its cause: %v", err)
	}
	if err.Error() != "step 2: boom" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestMarshalJSONBytes(t *testing.T) {
	js, err := MarshalJSONBytes(map[string]string{"html": "<b>&</b>"})
	if err != nil {
		t.Fatal(err)
	}
	if string(js) != `{"html":"<b>&</b>"}` {
		t.Errorf("got %s", js)
	}
	js, err = MarshalJSONIndent(map[string]int{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	if string(js) != "{\n  \"a\": 1\n}\n" {
		t.Errorf("got %q", js)
	}
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.md")
	if err := os.WriteFile(path, []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- WatchFile(ctx, path, 50*time.Millisecond, func(file string) { changed <- file })
	}()
	time.Sleep(200 * time.Millisecond)

	// unrelated files are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("v2"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case file := <-changed:
		abs, _ := filepath.Abs(path)
		if file != abs {
			t.Errorf("got change for %s, want %s", file, abs)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("WatchFile returned %v", err)
	}
}
