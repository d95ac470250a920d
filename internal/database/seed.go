package database

import (
	"fmt"
	"log"
)

// demoCorpus is a small built-in review corpus so a fresh install is
// playable before a real corpus is loaded. Reviews deliberately avoid
// naming their movie.
var demoCorpus = []struct {
	title   string
	year    int
	reviews []string
}{
	{
		title: "The Shawshank Redemption", year: 1994,
		reviews: []string{
			"A banker convicted of a crime he insists he did not commit spends two decades tunneling toward hope. The friendship at its center carries the whole film.",
			"Prison walls, a poster, and the slow arithmetic of patience. Few endings have ever felt this earned.",
		},
	},
	{
		title: "Jaws", year: 1975,
		reviews: []string{
			"Two notes of score and an unseen menace empty an entire beach town. The mechanical star barely works, which turns out to be the best thing that could have happened.",
		},
	},
	{
		title: "The Matrix", year: 1999,
		reviews: []string{
			"An office drone learns his whole world is rendered, swallows the right capsule, and bends physics in a trench coat. The lobby scene rewrote action cinema.",
			"A hacker's choice between two pills became the defining metaphor of its decade.",
		},
	},
	{
		title: "Casablanca", year: 1942,
		reviews: []string{
			"A cynical club owner in a wartime port city rediscovers his principles when an old flame walks in. Every line has become a quotation.",
		},
	},
	{
		title: "Spirited Away", year: 2001,
		reviews: []string{
			"A sulky girl wanders into a bathhouse for spirits and must work to win her name back. Hand-drawn wonder in every frame.",
		},
	},
	{
		title: "Parasite", year: 2019,
		reviews: []string{
			"One family folds itself into the household of another, floor by floor, until the basement answers back. A genre shift at the midpoint that nobody sees coming.",
		},
	},
}

// SeedDemoCorpus populates the movie and review tables with the built-in
// corpus. It is a no-op once any movie exists.
func (db *DB) SeedDemoCorpus() error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM movies").Scan(&count); err != nil {
		return fmt.Errorf("failed to check movie count: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	reviewsAdded := 0
	for _, entry := range demoCorpus {
		movieID, err := tx.ExecReturningID(
			"INSERT INTO movies (title, year) VALUES (?, ?)",
			entry.title, entry.year,
		)
		if err != nil {
			return fmt.Errorf("failed to seed movie %q: %w", entry.title, err)
		}

		for _, body := range entry.reviews {
			if _, err := tx.Exec(
				"INSERT INTO reviews (movie_id, body) VALUES (?, ?)",
				movieID, body,
			); err != nil {
				return fmt.Errorf("failed to seed review for %q: %w", entry.title, err)
			}
			reviewsAdded++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit corpus seed: %w", err)
	}

	log.Printf("Seeded demo corpus: %d movies, %d reviews", len(demoCorpus), reviewsAdded)
	return nil
}
