package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anything-labs/leadgen-cli/internal/model"
	"github.com/anything-labs/leadgen-cli/internal/resilience"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

// mockSource implements Source for testing.
type mockSource struct {
	name       string
	candidates []model.BusinessCandidate
	err        error
	calls      int
}

func (m *mockSource) Name() string { return m.name }

func (m *mockSource) Search(_ context.Context, _, _ string, _ int) ([]model.BusinessCandidate, error) {
	m.calls++
	return m.candidates, m.err
}

// noRetry keeps chain tests from sleeping in backoff.
func noRetry() resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.MaxAttempts = 1
	return cfg
}

func biz(name string) model.BusinessCandidate {
	return model.BusinessCandidate{Name: name, PlaceID: "p-" + name}
}

func TestChain_FirstSourceWins(t *testing.T) {
	primary := &mockSource{name: "primary", candidates: []model.BusinessCandidate{biz("a")}}
	fallback := &mockSource{name: "fallback", candidates: []model.BusinessCandidate{biz("b")}}

	chain := NewChain(noRetry(), primary, fallback)
	got, err := chain.Search(context.Background(), "plumbers", "Austin, TX", 10)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, 0, fallback.calls)
}

func TestChain_FallbackOnError(t *testing.T) {
	primary := &mockSource{name: "primary", err: errors.New("api down")}
	fallback := &mockSource{name: "fallback", candidates: []model.BusinessCandidate{biz("b")}}

	chain := NewChain(noRetry(), primary, fallback)
	got, err := chain.Search(context.Background(), "plumbers", "Austin, TX", 10)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Name)
}

func TestChain_FallbackOnEmpty(t *testing.T) {
	primary := &mockSource{name: "primary"}
	fallback := &mockSource{name: "fallback", candidates: []model.BusinessCandidate{biz("b")}}

	chain := NewChain(noRetry(), primary, fallback)
	got, err := chain.Search(context.Background(), "plumbers", "Austin, TX", 10)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Name)
}

func TestChain_AllEmptyIsNotAnError(t *testing.T) {
	chain := NewChain(noRetry(), &mockSource{name: "a"}, &mockSource{name: "b"})
	got, err := chain.Search(context.Background(), "plumbers", "Nowhere, XX", 10)

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestChain_AllFailed(t *testing.T) {
	chain := NewChain(noRetry(),
		&mockSource{name: "a", err: errors.New("a down")},
		&mockSource{name: "b", err: errors.New("b down")},
	)
	got, err := chain.Search(context.Background(), "plumbers", "Austin, TX", 10)

	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all sources failed")
}

func TestChain_NoSources(t *testing.T) {
	chain := NewChain(noRetry())
	got, err := chain.Search(context.Background(), "plumbers", "Austin, TX", 10)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestChain_BreakerSkipsDeadSource(t *testing.T) {
	primary := &mockSource{name: "primary", err: errors.New("api down")}
	fallback := &mockSource{name: "fallback", candidates: []model.BusinessCandidate{biz("b")}}
	chain := NewChain(noRetry(), primary, fallback)

	// Three consecutive failures open the primary's breaker.
	for i := 0; i < 3; i++ {
		_, err := chain.Search(context.Background(), "plumbers", "Austin, TX", 10)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, primary.calls)

	_, err := chain.Search(context.Background(), "plumbers", "Austin, TX", 10)
	require.NoError(t, err)
	assert.Equal(t, 3, primary.calls, "open breaker should skip the source")
	assert.Equal(t, 4, fallback.calls)
}

func TestChain_RetriesTransientErrors(t *testing.T) {
	transientThenOK := &flakySource{failures: 2}
	cfg := noRetry()
	cfg.MaxAttempts = 3
	cfg.InitialBackoff = 1 // effectively immediate
	chain := NewChain(cfg, transientThenOK)

	got, err := chain.Search(context.Background(), "plumbers", "Austin, TX", 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 3, transientThenOK.calls)
}

// flakySource fails with a transient error for the first N calls.
type flakySource struct {
	failures int
	calls    int
}

func (f *flakySource) Name() string { return "flaky" }

func (f *flakySource) Search(_ context.Context, _, _ string, _ int) ([]model.BusinessCandidate, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, resilience.NewTransientError(errors.New("rate limited"), 429)
	}
	return []model.BusinessCandidate{biz("ok")}, nil
}
