package models

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// maxGenerateAttempts bounds the collision retry loop. Exhausting it would
// require issuing every id in a single millisecond window, so hitting the
// cap is treated as a hard failure rather than retried forever.
const maxGenerateAttempts = 100

var ErrIDSpaceExhausted = errors.New("transaction id space exhausted")

// TransactionIDGenerator issues identifiers that are unique for the lifetime
// of the generator. Ids combine the current epoch milliseconds with a random
// four-digit suffix and are checked against the set of ids already issued.
//
// The issued set grows monotonically and is never pruned; ids are short
// strings and the expected volume is low. The generator is an injected
// dependency of every account so tests own and reset id state explicitly.
type TransactionIDGenerator struct {
	mu     sync.Mutex
	issued map[string]struct{}
	now    func() time.Time
}

// NewTransactionIDGenerator creates a generator with an empty issued set.
func NewTransactionIDGenerator() *TransactionIDGenerator {
	return &TransactionIDGenerator{
		issued: make(map[string]struct{}),
		now:    time.Now,
	}
}

// Generate returns a fresh unique id in the form "<millis>-<random>".
func (g *TransactionIDGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		id := g.candidate()
		if _, taken := g.issued[id]; taken {
			continue
		}
		g.issued[id] = struct{}{}
		return id, nil
	}

	return "", ErrIDSpaceExhausted
}

// Issued reports whether the generator has already handed out the given id.
func (g *TransactionIDGenerator) Issued(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.issued[id]
	return ok
}

func (g *TransactionIDGenerator) candidate() string {
	millis := g.now().UnixMilli()
	suffix := 1000 + rand.IntN(9000)
	return fmt.Sprintf("%d-%d", millis, suffix)
}
