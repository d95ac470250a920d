package repository

import (
	"database/sql"
	"fmt"

	"reelguess/internal/database"
	"reelguess/internal/models"
)

// ReviewRepository handles read access to the review corpus
type ReviewRepository struct {
	db database.DBTX
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db database.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `r.id, r.movie_id, m.title, r.body, r.created_at`

// CountReviews returns the size of the review corpus
func (r *ReviewRepository) CountReviews() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM reviews").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

// ReviewAt returns the review at the given offset in id order. The stable
// ordering lets a random offset act as a uniform draw.
func (r *ReviewRepository) ReviewAt(offset int) (*models.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN movies m ON m.id = r.movie_id
		ORDER BY r.id
		LIMIT 1 OFFSET ?
	`
	return r.scanReview(r.db.QueryRow(query, offset))
}

// GetReview retrieves a review by ID
func (r *ReviewRepository) GetReview(id int64) (*models.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN movies m ON m.id = r.movie_id
		WHERE r.id = ?
	`
	return r.scanReview(r.db.QueryRow(query, id))
}

// ListMovies returns all guessable movies in id order
func (r *ReviewRepository) ListMovies() ([]models.Movie, error) {
	query := `SELECT id, title, year, created_at FROM movies ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Year, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// scanReview reads a review row, returning nil when there is no row
func (r *ReviewRepository) scanReview(row *sql.Row) (*models.Review, error) {
	review := &models.Review{}
	err := row.Scan(
		&review.ID,
		&review.MovieID,
		&review.MovieTitle,
		&review.Text,
		&review.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}
