package models

import "time"

// Movie is a guessable answer in the corpus.
type Movie struct {
	ID        int64
	Title     string
	Year      int
	CreatedAt time.Time
}

// Review is one entry of the read-only review corpus. MovieID is the target
// answer and must never be sent to a player before they answer; MovieTitle is
// carried for the post-answer reveal.
type Review struct {
	ID         int64
	MovieID    int64
	MovieTitle string
	Text       string
	CreatedAt  time.Time
}
