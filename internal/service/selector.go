package service

import (
	"math/rand"
	"sync"

	"reelguess/internal/models"
)

// DefaultSelectorDraws bounds how many consecutive repeat draws the selector
// tolerates before declaring the corpus exhausted for this session.
const DefaultSelectorDraws = 50

// Selector picks the next review for a session: a uniform random draw over
// the corpus, rejected and redrawn while the review was already shown in the
// session. The randomness source is injected so tests can seed it.
type Selector struct {
	mu       sync.Mutex
	rng      *rand.Rand
	maxDraws int
}

// NewSelector creates a selector drawing from rng with the given retry
// budget. A non-positive budget falls back to DefaultSelectorDraws.
func NewSelector(rng *rand.Rand, maxDraws int) *Selector {
	if maxDraws <= 0 {
		maxDraws = DefaultSelectorDraws
	}
	return &Selector{rng: rng, maxDraws: maxDraws}
}

// Pick draws an unseen review for the session. It returns ExhaustedError
// when the corpus is empty or every draw within the budget repeated a review
// the session has already seen.
func (s *Selector) Pick(store Store, sessionID int64) (*models.Review, error) {
	history, err := store.ListHistory(sessionID)
	if err != nil {
		return nil, storeErr("list history", err)
	}

	seen := make(map[int64]bool, len(history))
	for _, h := range history {
		seen[h.ReviewID] = true
	}

	count, err := store.CountReviews()
	if err != nil {
		return nil, storeErr("count reviews", err)
	}
	if count == 0 {
		return nil, ExhaustedError{Attempts: 0}
	}

	for attempt := 0; attempt < s.maxDraws; attempt++ {
		review, err := store.ReviewAt(s.draw(count))
		if err != nil {
			return nil, storeErr("sample review", err)
		}
		if review == nil {
			// Corpus shrank between count and draw; treat as a repeat.
			continue
		}
		if !seen[review.ID] {
			return review, nil
		}
	}

	return nil, ExhaustedError{Attempts: s.maxDraws}
}

// draw picks a uniform offset. rand.Rand is not safe for concurrent use, so
// the draw is serialized across sessions.
func (s *Selector) draw(count int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(count)
}
