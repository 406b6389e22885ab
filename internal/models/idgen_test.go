package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionIDGenerator_Uniqueness(t *testing.T) {
	gen := NewTransactionIDGenerator()

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id, err := gen.Generate()
		require.NoError(t, err)

		_, dup := seen[id]
		require.False(t, dup, "id %q issued twice", id)
		seen[id] = struct{}{}

		assert.True(t, gen.Issued(id))
	}
}

func TestTransactionIDGenerator_Format(t *testing.T) {
	gen := NewTransactionIDGenerator()

	id, err := gen.Generate()
	require.NoError(t, err)

	// epoch millis, a dash, then a four-digit suffix
	assert.Regexp(t, regexp.MustCompile(`^\d{13}-\d{4}$`), id)
}

func TestTransactionIDGenerator_ExhaustsWithFrozenClock(t *testing.T) {
	gen := NewTransactionIDGenerator()
	frozen := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)
	gen.now = func() time.Time { return frozen }

	// with the clock frozen only 9000 suffixes exist
	issued := 0
	for i := 0; i < 9000*maxGenerateAttempts; i++ {
		if _, err := gen.Generate(); err != nil {
			require.ErrorIs(t, err, ErrIDSpaceExhausted)
			break
		}
		issued++
	}

	assert.LessOrEqual(t, issued, 9000)
	assert.Greater(t, issued, 0)

	// a moving clock recovers the generator
	gen.now = time.Now
	_, err := gen.Generate()
	assert.NoError(t, err)
}
