package onboarding

// Package onboarding implements the Onboarding Ledger: a per-identity flag
// recording completion of the one-time first-run setup flow. The flag lives
// in client-local storage only, is never sent to the backend, and never
// expires. A missing flag reads as "not onboarded" so a fresh install
// always lands in the onboarding flow rather than silently skipping it.

import (
	"errors"

	"github.com/BRENHINES/SUPRSS/internal/ports"
)

const (
	keyPrefix = "onboarded:"
	doneValue = "1"
)

// Ledger records onboarding completion per identity id.
type Ledger struct {
	durable ports.StateStore
}

var _ ports.OnboardingLedger = (*Ledger)(nil)

// New creates a ledger over durable local storage.
func New(durable ports.StateStore) *Ledger {
	return &Ledger{durable: durable}
}

// IsOnboarded reports whether the identity has completed onboarding.
// False for an empty id and for any id never marked.
func (l *Ledger) IsOnboarded(identityID string) bool {
	if identityID == "" {
		return false
	}
	v, ok := l.durable.Get(keyPrefix + identityID)
	return ok && v == doneValue
}

// MarkOnboarded flips the flag for the identity. Idempotent.
func (l *Ledger) MarkOnboarded(identityID string) error {
	if identityID == "" {
		return errors.New("identity id is required")
	}
	return l.durable.Set(keyPrefix+identityID, doneValue)
}
