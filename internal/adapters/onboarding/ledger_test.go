package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BRENHINES/SUPRSS/internal/mocks/authmocks"
)

func TestLedger_FalseUntilMarked(t *testing.T) {
	ledger := New(authmocks.NewMemoryStateStore())

	assert.False(t, ledger.IsOnboarded("42"))

	require.NoError(t, ledger.MarkOnboarded("42"))

	assert.True(t, ledger.IsOnboarded("42"))
}

func TestLedger_PerIdentityIsolation(t *testing.T) {
	ledger := New(authmocks.NewMemoryStateStore())

	require.NoError(t, ledger.MarkOnboarded("42"))

	assert.True(t, ledger.IsOnboarded("42"))
	assert.False(t, ledger.IsOnboarded("43"))
	assert.False(t, ledger.IsOnboarded("never-seen"))
}

func TestLedger_EmptyIdentityID(t *testing.T) {
	ledger := New(authmocks.NewMemoryStateStore())

	assert.False(t, ledger.IsOnboarded(""))
	assert.Error(t, ledger.MarkOnboarded(""))
}

func TestLedger_MarkIsIdempotent(t *testing.T) {
	store := authmocks.NewMemoryStateStore()
	ledger := New(store)

	require.NoError(t, ledger.MarkOnboarded("42"))
	require.NoError(t, ledger.MarkOnboarded("42"))

	assert.True(t, ledger.IsOnboarded("42"))
	assert.Equal(t, 1, store.Len())
}

func TestLedger_SurvivesRestart(t *testing.T) {
	store := authmocks.NewMemoryStateStore()

	require.NoError(t, New(store).MarkOnboarded("42"))

	// A new ledger over the same durable storage sees the flag.
	assert.True(t, New(store).IsOnboarded("42"))
}
