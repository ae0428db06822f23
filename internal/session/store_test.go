package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yildizm/ingredient-copilot/internal/common"
	"github.com/yildizm/ingredient-copilot/internal/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleResult() *common.AnalysisResult {
	return &common.AnalysisResult{
		InferredIntent: "snack check",
		WhatStandsOut:  "Red 40",
		WhyItMatters:   "dye",
		Uncertainty:    "amount",
		Recommendation: "occasionally",
	}
}

func TestStore_InitialState(t *testing.T) {
	s := NewStore()
	defer s.Close()

	snap := s.Snapshot()
	assert.Equal(t, StatePicker, snap.State)
	assert.Empty(t, snap.Input)
	assert.Nil(t, snap.Result)
	assert.Empty(t, snap.Error)
}

func TestStore_BeginEmpty(t *testing.T) {
	s := NewStore()
	defer s.Close()
	s.SetInput("")

	before := s.Snapshot()
	sub, err := s.Begin("")
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Nil(t, sub)
	assert.Equal(t, before, s.Snapshot())
}

func TestStore_BeginWhitespaceIsSubmitted(t *testing.T) {
	s := NewStore()
	defer s.Close()

	sub, err := s.Begin("   ")
	require.NoError(t, err)
	assert.Equal(t, "   ", sub.Text)
	assert.Equal(t, StateLoading, s.State())
}

func TestStore_BeginClearsPriorOutput(t *testing.T) {
	s := NewStore()
	defer s.Close()

	sub, err := s.Begin("Salt")
	require.NoError(t, err)
	require.True(t, s.Apply(Outcome{SubmissionID: sub.ID, Err: service.NewStatusError("/analyze", 500)}))
	require.Equal(t, StateError, s.State())

	_, err = s.Begin("Sugar")
	require.NoError(t, err)
	snap := s.Snapshot()
	assert.Equal(t, StateLoading, snap.State)
	assert.Empty(t, snap.Error)
	assert.Nil(t, snap.Result)
	assert.Equal(t, "Sugar", snap.Input)
}

func TestStore_BeginWhileLoading(t *testing.T) {
	s := NewStore()
	defer s.Close()

	first, err := s.Begin("Salt")
	require.NoError(t, err)

	_, err = s.Begin("Sugar")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Same(t, first, s.InFlight())
	assert.NoError(t, first.Context().Err())
}

func TestStore_ApplySuccess(t *testing.T) {
	s := NewStore()
	defer s.Close()

	sub, err := s.Begin("Red 40")
	require.NoError(t, err)

	assert.True(t, s.Apply(Outcome{SubmissionID: sub.ID, Result: sampleResult()}))
	snap := s.Snapshot()
	assert.Equal(t, StateResult, snap.State)
	assert.Equal(t, sampleResult(), snap.Result)
	assert.Empty(t, snap.Error)
	assert.Error(t, sub.Context().Err(), "resolved submission context is released")
}

func TestStore_ApplyFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"status", service.NewStatusError("/analyze", 503), common.MsgBackendFailed},
		{"network", service.NewServiceError(service.ErrTypeNetwork, "down", "/analyze"), common.MsgUnreachable},
		{"other", errors.New("boom"), common.MsgUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			defer s.Close()

			sub, err := s.Begin("Salt")
			require.NoError(t, err)
			require.True(t, s.Apply(Outcome{SubmissionID: sub.ID, Err: tt.err}))

			snap := s.Snapshot()
			assert.Equal(t, StateError, snap.State)
			assert.Equal(t, tt.want, snap.Error)
			assert.Nil(t, snap.Result)
		})
	}
}

func TestStore_ApplyStale(t *testing.T) {
	s := NewStore()
	defer s.Close()

	old, err := s.Begin("Salt")
	require.NoError(t, err)
	current, err := s.Supersede("Sugar")
	require.NoError(t, err)

	assert.ErrorIs(t, old.Context().Err(), context.Canceled)
	assert.False(t, s.Apply(Outcome{SubmissionID: old.ID, Result: sampleResult()}))
	assert.Equal(t, StateLoading, s.State())

	assert.True(t, s.Apply(Outcome{SubmissionID: current.ID, Result: sampleResult()}))
	assert.False(t, s.Apply(Outcome{SubmissionID: current.ID, Result: sampleResult()}))
	assert.Equal(t, "Sugar", s.Input())
}

func TestStore_ClearAfterResult(t *testing.T) {
	s := NewStore()
	defer s.Close()

	sub, err := s.Begin("Red 40")
	require.NoError(t, err)
	s.Apply(Outcome{SubmissionID: sub.ID, Result: sampleResult()})

	s.Clear()
	snap := s.Snapshot()
	assert.Equal(t, StatePicker, snap.State)
	assert.Empty(t, snap.Input)
	assert.Nil(t, snap.Result)
}

func TestStore_ClearKeepsError(t *testing.T) {
	tests := []struct {
		name      string
		reset     bool
		wantState State
	}{
		{"default keeps error", false, StateError},
		{"reset option drops error", true, StatePicker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(WithClearResetsError(tt.reset))
			defer s.Close()

			sub, err := s.Begin("Salt")
			require.NoError(t, err)
			s.Apply(Outcome{SubmissionID: sub.ID, Err: service.NewStatusError("/analyze", 500)})

			s.Clear()
			assert.Equal(t, tt.wantState, s.State())
			assert.Empty(t, s.Input())
		})
	}
}

func TestStore_SelectSample(t *testing.T) {
	s := NewStore()
	defer s.Close()
	s.SetSamples(common.FallbackSamples())

	sub, err := s.SelectSample(2)
	require.NoError(t, err)
	assert.Equal(t, "Potatoes, Vegetable Oil, Salt", sub.Text)
	assert.Equal(t, "Potatoes, Vegetable Oil, Salt", s.Input())
	assert.Equal(t, StateLoading, s.State())

	_, err = s.SelectSample(0)
	assert.ErrorIs(t, err, ErrBusy)
}

func TestStore_SelectSampleEdgeCases(t *testing.T) {
	s := NewStore()
	defer s.Close()
	s.SetSamples([]common.SampleProduct{{ID: "x", Name: "Blank"}})

	_, err := s.SelectSample(5)
	assert.ErrorIs(t, err, ErrNoSuchSample)
	_, err = s.SelectSample(-1)
	assert.ErrorIs(t, err, ErrNoSuchSample)

	_, err = s.SelectSample(0)
	assert.ErrorIs(t, err, ErrEmptyInput)

	s.SetInput("Oats")
	sub, err := s.SelectSample(0)
	require.NoError(t, err)
	assert.Equal(t, "Oats", sub.Text)
}

func TestStore_Timeout(t *testing.T) {
	s := NewStore(WithTimeout(20 * time.Millisecond))
	defer s.Close()

	sub, err := s.Begin("Salt")
	require.NoError(t, err)

	select {
	case <-sub.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("submission did not time out")
	}
}

func TestStore_Close(t *testing.T) {
	s := NewStore()

	sub, err := s.Begin("Salt")
	require.NoError(t, err)

	s.Close()
	assert.Error(t, sub.Context().Err())
	assert.Equal(t, StatePicker, s.State())

	_, err = s.Begin("Sugar")
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, s.Apply(Outcome{SubmissionID: sub.ID, Result: sampleResult()}))

	s.Close()
}

func TestStore_ProductName(t *testing.T) {
	s := NewStore(WithProductName("Trail Mix"))
	defer s.Close()

	sub, err := s.Begin("Peanuts")
	require.NoError(t, err)
	req := sub.Request()
	assert.Equal(t, "Peanuts", req.IngredientsText)
	assert.Equal(t, "Trail Mix", req.ProductName)
}

func TestStore_SamplesAreCopied(t *testing.T) {
	s := NewStore()
	defer s.Close()

	in := common.FallbackSamples()
	s.SetSamples(in)
	in[0].Name = "mutated"

	out := s.Samples()
	assert.Equal(t, "Energy Drink", out[0].Name)
	out[1].Name = "mutated"
	assert.Equal(t, "Almond Milk", s.Samples()[1].Name)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "picker", StatePicker.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "result", StateResult.String())
	assert.Equal(t, "error", StateError.String())
}

func TestStore_ParentContext(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	store := NewStore(WithContext(parent))
	defer store.Close()

	sub, err := store.Begin("Salt")
	require.NoError(t, err)

	cancel()
	assert.ErrorIs(t, sub.Context().Err(), context.Canceled)
}
