package repository

import (
	"fmt"

	"reelguess/internal/database"
	"reelguess/internal/models"
	"reelguess/internal/service"
)

// Store bundles the repositories behind the service.Store interface and adds
// the unit-of-work boundary. A Store built by NewStore runs each call on the
// shared connection pool; InTx rebinds every repository onto one transaction
// so a group of writes commits or rolls back together.
type Store struct {
	db       *database.DB // nil for a transaction-scoped store
	users    *UserRepository
	sessions *SessionRepository
	reviews  *ReviewRepository
	history  *HistoryRepository
}

// NewStore creates a store over the database connection pool
func NewStore(db *database.DB) *Store {
	return &Store{
		db:       db,
		users:    NewUserRepository(db),
		sessions: NewSessionRepository(db),
		reviews:  NewReviewRepository(db),
		history:  NewHistoryRepository(db),
	}
}

// newTxStore creates a store whose repositories all run on tx
func newTxStore(tx *database.Tx) *Store {
	return &Store{
		users:    NewUserRepository(tx),
		sessions: NewSessionRepository(tx),
		reviews:  NewReviewRepository(tx),
		history:  NewHistoryRepository(tx),
	}
}

// InTx runs fn against a transaction-scoped store. fn's error aborts and
// rolls back the transaction and is returned unchanged; otherwise the
// transaction commits. Nested calls reuse the open transaction.
func (s *Store) InTx(fn func(service.Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(newTxStore(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) GetUser(id int64) (*models.User, error) {
	return s.users.GetUserByID(id)
}

func (s *Store) UpdateUserStats(id int64, record, playCount int) error {
	return s.users.UpdateUserStats(id, record, playCount)
}

func (s *Store) GetSession(userID int64, activeOnly bool) (*models.Session, error) {
	return s.sessions.GetSession(userID, activeOnly)
}

func (s *Store) CreateSession(sess *models.Session) (*models.Session, error) {
	return s.sessions.CreateSession(sess)
}

func (s *Store) UpdateSession(sess *models.Session) (bool, error) {
	return s.sessions.UpdateSession(sess)
}

func (s *Store) CountReviews() (int, error) {
	return s.reviews.CountReviews()
}

func (s *Store) ReviewAt(offset int) (*models.Review, error) {
	return s.reviews.ReviewAt(offset)
}

func (s *Store) GetReview(id int64) (*models.Review, error) {
	return s.reviews.GetReview(id)
}

func (s *Store) ListMovies() ([]models.Movie, error) {
	return s.reviews.ListMovies()
}

func (s *Store) CreateHistory(sessionID, reviewID int64) (*models.HistoryRecord, error) {
	return s.history.CreateHistory(sessionID, reviewID)
}

func (s *Store) SetHistoryAnswer(sessionID, reviewID, answer int64, correct bool) error {
	return s.history.SetHistoryAnswer(sessionID, reviewID, answer, correct)
}

func (s *Store) ListHistory(sessionID int64) ([]models.HistoryRecord, error) {
	return s.history.ListHistory(sessionID)
}
