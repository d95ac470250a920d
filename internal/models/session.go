package models

import "time"

// Game tuning constants. StartingLives is what a fresh session begins with;
// MaxLives caps the bonus lives earned through combos.
const (
	StartingLives   = 2
	MaxLives        = 5
	ComboBonusEvery = 10
)

// Session represents one play-through of the guessing game.
// Version is the optimistic concurrency token: every persisted update
// increments it, and updates carrying a stale version are rejected.
type Session struct {
	ID              int64
	UserID          int64
	Lives           int
	Score           int
	Combo           int
	IsActive        bool
	PendingReviewID *int64
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasPendingReview reports whether a review has been served and is awaiting
// an answer.
func (s *Session) HasPendingReview() bool {
	return s.PendingReviewID != nil
}

// HistoryRecord is one review shown in a session. It doubles as the
// anti-repetition set and the audit trail: created with a nil answer when the
// review is served, filled in exactly once when the answer arrives.
type HistoryRecord struct {
	ID              int64
	SessionID       int64
	ReviewID        int64
	SubmittedAnswer *int64 // guessed movie id, nil until answered
	IsCorrect       *bool  // nil until answered
	CreatedAt       time.Time
	AnsweredAt      *time.Time
}

// Answered reports whether this record has already received its answer.
func (h *HistoryRecord) Answered() bool {
	return h.IsCorrect != nil
}
