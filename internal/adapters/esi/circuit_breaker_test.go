package esi_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/evetrade/internal/adapters/esi"
	"github.com/andrescamacho/evetrade/internal/domain/shared"
)

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	clock := shared.NewMockClock(time.Now())
	cb := esi.NewCircuitBreaker(3, time.Minute, clock)
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		err := cb.Call(func() error { return boom })
		require.ErrorIs(t, err, boom)
	}

	assert.Equal(t, esi.CircuitOpen, cb.State())

	err := cb.Call(func() error { return nil })
	assert.ErrorIs(t, err, esi.ErrCircuitOpen)
}

func TestCircuitBreaker_RecoversThroughHalfOpen(t *testing.T) {
	clock := shared.NewMockClock(time.Now())
	cb := esi.NewCircuitBreaker(1, time.Minute, clock)

	require.Error(t, cb.Call(func() error { return errors.New("boom") }))
	require.Equal(t, esi.CircuitOpen, cb.State())

	// After the timeout a probe request is allowed; success closes the circuit
	clock.Advance(time.Minute)
	err := cb.Call(func() error { return nil })

	require.NoError(t, err)
	assert.Equal(t, esi.CircuitClosed, cb.State())
	assert.Equal(t, 0, cb.FailureCount())
}

func TestCircuitBreaker_ReopensOnHalfOpenFailure(t *testing.T) {
	clock := shared.NewMockClock(time.Now())
	cb := esi.NewCircuitBreaker(1, time.Minute, clock)
	boom := errors.New("boom")

	require.Error(t, cb.Call(func() error { return boom }))
	clock.Advance(time.Minute)

	err := cb.Call(func() error { return boom })

	require.ErrorIs(t, err, boom)
	assert.Equal(t, esi.CircuitOpen, cb.State())
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := esi.NewCircuitBreaker(3, time.Minute, nil)

	require.Error(t, cb.Call(func() error { return errors.New("boom") }))
	require.NoError(t, cb.Call(func() error { return nil }))

	assert.Equal(t, 0, cb.FailureCount())
	assert.Equal(t, esi.CircuitClosed, cb.State())
}
