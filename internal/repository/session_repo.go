package repository

import (
	"database/sql"
	"fmt"
	"time"

	"reelguess/internal/database"
	"reelguess/internal/models"
)

// SessionRepository handles database operations for game sessions
type SessionRepository struct {
	db database.DBTX
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db database.DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, user_id, lives, score, combo, is_active, pending_review_id, version, created_at, updated_at`

// CreateSession inserts a new session row and returns the stored session
func (r *SessionRepository) CreateSession(s *models.Session) (*models.Session, error) {
	query := `
		INSERT INTO sessions (user_id, lives, score, combo, is_active, version)
		VALUES (?, ?, ?, ?, ?, 1)
	`
	id, err := r.db.ExecReturningID(query, s.UserID, s.Lives, s.Score, s.Combo, s.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return r.GetSessionByID(id)
}

// GetSessionByID retrieves a session by ID
func (r *SessionRepository) GetSessionByID(id int64) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	return r.scanSession(r.db.QueryRow(query, id))
}

// GetSession retrieves the user's most recent session; with activeOnly set,
// only an active one. Returns nil when there is no matching session.
func (r *SessionRepository) GetSession(userID int64, activeOnly bool) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE user_id = ?`
	args := []interface{}{userID}
	if activeOnly {
		query += ` AND is_active = ?`
		args = append(args, true)
	}
	query += ` ORDER BY id DESC LIMIT 1`

	return r.scanSession(r.db.QueryRow(query, args...))
}

// UpdateSession writes the session's mutable fields guarded by the version
// token. Returns false when the stored version no longer matches, i.e. a
// concurrent writer committed first.
func (r *SessionRepository) UpdateSession(s *models.Session) (bool, error) {
	query := `
		UPDATE sessions
		SET lives = ?, score = ?, combo = ?, is_active = ?, pending_review_id = ?,
		    version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?
	`
	result, err := r.db.Exec(query,
		s.Lives, s.Score, s.Combo, s.IsActive, s.PendingReviewID,
		time.Now(), s.ID, s.Version,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check session update: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	s.Version++
	return true, nil
}

// scanSession reads a session row, returning nil when there is no row
func (r *SessionRepository) scanSession(row *sql.Row) (*models.Session, error) {
	s := &models.Session{}
	var pendingReviewID sql.NullInt64

	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Lives,
		&s.Score,
		&s.Combo,
		&s.IsActive,
		&pendingReviewID,
		&s.Version,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if pendingReviewID.Valid {
		s.PendingReviewID = &pendingReviewID.Int64
	}
	return s, nil
}
