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
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStep appends its tag to the input and records every call.
type mockStep struct {
	kind     Kind
	calls    *[]string
	comments string
	err      error
	nilRes   bool
	onRun    func()
}

func (m *mockStep) Kind() Kind    { return m.kind }
func (m *mockStep) Name() string  { return string(m.kind) }
func (m *mockStep) Label() string { return "Running " + string(m.kind) + "..." }

func (m *mockStep) Produce(ctx context.Context, input string) (*StepResult, error) {
	if m.calls != nil {
		*m.calls = append(*m.calls, fmt.Sprintf("%s(%s)", m.kind, input))
	}
	if m.onRun != nil {
		m.onRun()
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.nilRes {
		return nil, nil
	}
	return &StepResult{EditedText: input + "+" + string(m.kind), Comments: m.comments}, nil
}

// mockBuilder hands out pre-built steps by kind.
type mockBuilder struct {
	steps map[Kind]*mockStep
	reqs  []Request
	err   error
}

func (b *mockBuilder) Build(kind Kind, req Request) (Step, error) {
	b.reqs = append(b.reqs, req)
	if b.err != nil {
		return nil, b.err
	}
	s, ok := b.steps[kind]
	if !ok {
		return nil, fmt.Errorf("no step for %s", kind)
	}
	return s, nil
}

func newBuilder(calls *[]string, kinds ...Kind) *mockBuilder {
	b := &mockBuilder{steps: map[Kind]*mockStep{}}
	for _, k := range kinds {
		b.steps[k] = &mockStep{kind: k, calls: calls}
	}
	return b
}

type recordingSink struct {
	events []Progress
	starts []string
}

func (r *recordingSink) OnProgress(p Progress) { r.events = append(r.events, p) }

func (r *recordingSink) OnStepStart(index, total int, label string) {
	r.starts = append(r.starts, fmt.Sprintf("Step %d/%d: %s", index, total, label))
}

func TestRun_NoStepsIsIdentity(t *testing.T) {
	var calls []string
	b := newBuilder(&calls, KindGrammar)
	sink := &recordingSink{}

	res, err := Run(context.Background(), Request{Text: "Hello world"}, b, sink)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", res.FinalText)
	assert.Empty(t, res.Comments())
	assert.Empty(t, calls)
	assert.Empty(t, b.reqs)
	assert.Empty(t, res.Revisions)
	assert.Empty(t, sink.starts)
	assert.Equal(t, []Progress{{Index: 0, Total: 0, Label: DoneLabel, Done: true}}, sink.events)
}

func TestPipeline_NoStepsCompletes(t *testing.T) {
	st := NewPipelineState("Hello world")
	var events []Progress
	p := &Pipeline{Progress: ProgressFunc(func(pr Progress) { events = append(events, pr) })}
	require.NoError(t, p.Run(context.Background(), st))
	assert.Equal(t, StatusCompleted, st.Status)
	assert.Equal(t, "Hello world", st.Current.Text)
	require.Len(t, events, 1)
	assert.True(t, events[0].Done)
}

func TestRun_NoStepsAcceptsBlankText(t *testing.T) {
	res, err := Run(context.Background(), Request{Text: "   "}, newBuilder(nil), nil)
	require.NoError(t, err)
	assert.Equal(t, "   ", res.FinalText)
}

func TestRun_SingleStepPassthrough(t *testing.T) {
	b := &mockBuilder{steps: map[Kind]*mockStep{
		KindTone: {kind: KindTone},
	}}
	res, err := Run(context.Background(), Request{Text: "hey", Steps: []Kind{KindTone}, Tone: "casual"}, b, nil)
	require.NoError(t, err)
	assert.Equal(t, "hey+tone", res.FinalText)
	require.Len(t, b.reqs, 1)
	assert.Equal(t, "casual", b.reqs[0].Tone)
}

func TestRun_CanonicalOrder(t *testing.T) {
	var calls []string
	b := newBuilder(&calls, KindGrammar, KindClarity, KindTone)
	sel := []Kind{KindTone, KindGrammar, KindClarity}

	res, err := Run(context.Background(), Request{Text: "x", Steps: sel}, b, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"grammar(x)",
		"clarity(x+grammar)",
		"tone(x+grammar+clarity)",
	}, calls)
	assert.Equal(t, "x+grammar+clarity+tone", res.FinalText)
	require.Len(t, res.Revisions, 3)
	for _, rec := range res.Revisions {
		assert.Equal(t, StepOK, rec.Status)
		assert.True(t, rec.Changed)
	}
	assert.Equal(t, res.Revisions[0].OutputHash, res.Revisions[1].InputHash)
}

func TestRun_DuplicateSelection(t *testing.T) {
	var calls []string
	b := newBuilder(&calls, KindGrammar)
	_, err := Run(context.Background(), Request{Text: "x", Steps: []Kind{KindGrammar, KindGrammar}}, b, nil)
	require.NoError(t, err)
	assert.Len(t, calls, 1)
}

func TestRun_FailureStopsPipeline(t *testing.T) {
	var calls []string
	b := newBuilder(&calls, KindGrammar, KindClarity, KindTone)
	cause := errors.New("model unavailable")
	b.steps[KindClarity].err = cause
	sink := &recordingSink{}

	res, err := Run(context.Background(), Request{Text: "x", Steps: []Kind{KindGrammar, KindClarity, KindTone}}, b, sink)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrCapability))
	assert.True(t, errors.Is(err, cause))

	var se *StepError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "clarity", se.Step)
	assert.Equal(t, KindClarity, se.Kind)

	assert.Equal(t, []string{"grammar(x)", "clarity(x+grammar)"}, calls)
	require.Len(t, sink.events, 1)
	assert.False(t, sink.events[0].Done)
}

func TestRun_NilResultIsFailure(t *testing.T) {
	b := newBuilder(nil, KindGrammar)
	b.steps[KindGrammar].nilRes = true
	_, err := Run(context.Background(), Request{Text: "x", Steps: []Kind{KindGrammar}}, b, nil)
	assert.True(t, errors.Is(err, ErrCapability))
}

func TestRun_EmptyInput(t *testing.T) {
	var calls []string
	b := newBuilder(&calls, KindGrammar)
	for _, text := range []string{"", " \n\t "} {
		_, err := Run(context.Background(), Request{Text: text, Steps: []Kind{KindGrammar}}, b, nil)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
	assert.Empty(t, calls)
	assert.Empty(t, b.reqs)
}

func TestRun_BuildError(t *testing.T) {
	b := newBuilder(nil)
	b.err = errors.New("unknown tone")
	_, err := Run(context.Background(), Request{Text: "x", Steps: []Kind{KindTone}}, b, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tone")
}

func TestRun_Progress(t *testing.T) {
	b := newBuilder(nil, KindGrammar, KindClarity)
	sink := &recordingSink{}
	_, err := Run(context.Background(), Request{Text: "x", Steps: []Kind{KindClarity, KindGrammar}}, b, sink)
	require.NoError(t, err)

	assert.Equal(t, []Progress{
		{Index: 1, Total: 2, Label: "Running grammar..."},
		{Index: 2, Total: 2, Label: "Running clarity..."},
		{Index: 2, Total: 2, Label: DoneLabel, Done: true},
	}, sink.events)
	assert.Equal(t, []string{
		"Step 1/2: Running grammar...",
		"Step 2/2: Running clarity...",
	}, sink.starts)
}

func TestRun_ProgressFunc(t *testing.T) {
	var n int
	sink := ProgressFunc(func(Progress) { n++ })
	_, err := Run(context.Background(), Request{Text: "x", Steps: []Kind{KindTone}}, newBuilder(nil, KindTone), sink)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRun_Comments(t *testing.T) {
	b := newBuilder(nil, KindGrammar, KindClarity, KindTone)
	b.steps[KindGrammar].comments = "Fixed a typo."
	b.steps[KindClarity].comments = "  \n "
	b.steps[KindTone].comments = "Made it friendlier.\n"

	res, err := Run(context.Background(), Request{Text: "x", Steps: CanonicalOrder}, b, nil)
	require.NoError(t, err)
	require.Len(t, res.Sections, 2)
	assert.Equal(t, "#### grammar\nFixed a typo.\n#### tone\nMade it friendlier.", res.Comments())
}

func TestRun_CancelBetweenSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls []string
	b := newBuilder(&calls, KindGrammar, KindClarity)
	b.steps[KindGrammar].onRun = cancel

	_, err := Run(ctx, Request{Text: "x", Steps: []Kind{KindGrammar, KindClarity}}, b, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"grammar(x)"}, calls)
}

func TestPipeline_CancelledState(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := NewPipelineState("x")
	p := &Pipeline{Steps: []Step{&mockStep{kind: KindGrammar}}}
	err := p.Run(ctx, st)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, StatusCancelled, st.Status)
	assert.Empty(t, st.History)
}

func TestPipeline_MidStepCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	step := &mockStep{kind: KindGrammar, onRun: cancel, err: context.Canceled}
	st := NewPipelineState("x")
	err := (&Pipeline{Steps: []Step{step}}).Run(ctx, st)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, StatusCancelled, st.Status)
}

func TestPipeline_States(t *testing.T) {
	st := NewPipelineState("x")
	assert.Equal(t, StatusIdle, st.Status)

	p := &Pipeline{Steps: []Step{&mockStep{kind: KindGrammar}}}
	require.NoError(t, p.Run(context.Background(), st))
	assert.Equal(t, StatusCompleted, st.Status)
	assert.Equal(t, "x", st.Original.Text)
	assert.Equal(t, "x+grammar", st.Current.Text)

	// a finished state cannot be run again
	assert.Error(t, p.Run(context.Background(), st))

	failed := NewPipelineState("x")
	p = &Pipeline{Steps: []Step{&mockStep{kind: KindGrammar, err: errors.New("boom")}}}
	require.Error(t, p.Run(context.Background(), failed))
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Equal(t, "x", failed.Current.Text)
	require.Len(t, failed.History, 1)
	assert.Equal(t, StepFailed, failed.History[0].Status)
	assert.Equal(t, "boom", failed.History[0].Error)
}

func TestPlan(t *testing.T) {
	assert.Equal(t, []Kind{KindGrammar, KindClarity, KindTone}, Plan([]Kind{KindTone, KindClarity, KindGrammar, KindTone}))
	assert.Empty(t, Plan(nil))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Fix-Grammar ")
	require.NoError(t, err)
	assert.Equal(t, KindGrammar, k)
	_, err = ParseKind("spelling")
	assert.Error(t, err)
}

func TestSnapshot(t *testing.T) {
	a, b := NewSnapshot("text"), NewSnapshot("text")
	assert.True(t, a.Same(b))
	assert.False(t, a.Same(NewSnapshot("other")))
}
