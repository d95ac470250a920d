package repository

import (
	"fmt"
	"time"

	"reelguess/internal/database"
	"reelguess/internal/models"
)

// HistoryRepository handles database operations for session history records
type HistoryRepository struct {
	db database.DBTX
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db database.DBTX) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// CreateHistory records that a review was served to a session
func (r *HistoryRepository) CreateHistory(sessionID, reviewID int64) (*models.HistoryRecord, error) {
	query := `
		INSERT INTO session_history (session_id, review_id)
		VALUES (?, ?)
	`
	id, err := r.db.ExecReturningID(query, sessionID, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to create history record: %w", err)
	}

	return &models.HistoryRecord{
		ID:        id,
		SessionID: sessionID,
		ReviewID:  reviewID,
		CreatedAt: time.Now(),
	}, nil
}

// SetHistoryAnswer fills in the answer fields of a served review's record.
// The IS NULL guard keeps the record write-once.
func (r *HistoryRepository) SetHistoryAnswer(sessionID, reviewID, answer int64, correct bool) error {
	query := `
		UPDATE session_history
		SET submitted_answer = ?, is_correct = ?, answered_at = ?
		WHERE session_id = ? AND review_id = ? AND is_correct IS NULL
	`
	result, err := r.db.Exec(query, answer, correct, time.Now(), sessionID, reviewID)
	if err != nil {
		return fmt.Errorf("failed to update history record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check history update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no unanswered history record for session %d review %d", sessionID, reviewID)
	}
	return nil
}

// ListHistory returns every history record of a session, oldest first
func (r *HistoryRepository) ListHistory(sessionID int64) ([]models.HistoryRecord, error) {
	query := `
		SELECT id, session_id, review_id, submitted_answer, is_correct, created_at, answered_at
		FROM session_history
		WHERE session_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var records []models.HistoryRecord
	for rows.Next() {
		var h models.HistoryRecord
		err := rows.Scan(
			&h.ID,
			&h.SessionID,
			&h.ReviewID,
			&h.SubmittedAnswer,
			&h.IsCorrect,
			&h.CreatedAt,
			&h.AnsweredAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, h)
	}
	return records, rows.Err()
}
