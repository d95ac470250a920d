package service

import "reelguess/internal/models"

// Store is the persistence capability the game engine consumes. The SQL
// implementation lives in internal/repository; tests inject in-memory fakes.
//
// Implementations return plain errors; the engine wraps them as
// PersistenceError. Lookups that find nothing return (nil, nil).
type Store interface {
	// GetUser resolves a user by id, nil when absent.
	GetUser(id int64) (*models.User, error)

	// UpdateUserStats persists the user's high score and play count.
	UpdateUserStats(id int64, record, playCount int) error

	// GetSession returns the user's most recent session, or only the active
	// one when activeOnly is set. Nil when there is none.
	GetSession(userID int64, activeOnly bool) (*models.Session, error)

	// CreateSession persists a new session and returns it with its id and
	// version filled in.
	CreateSession(s *models.Session) (*models.Session, error)

	// UpdateSession persists the session's mutable fields, guarded by the
	// optimistic version token. It reports false, without error, when the
	// stored version no longer matches s.Version (a concurrent writer won).
	// On success s.Version is advanced to the stored value.
	UpdateSession(s *models.Session) (bool, error)

	// CountReviews returns the size of the review corpus.
	CountReviews() (int, error)

	// ReviewAt returns the review at the given offset in stable id order.
	// The selector turns a random offset into a uniform draw with this.
	ReviewAt(offset int) (*models.Review, error)

	// GetReview resolves a review by id, nil when absent.
	GetReview(id int64) (*models.Review, error)

	// ListMovies returns the guessable movies, id order.
	ListMovies() ([]models.Movie, error)

	// CreateHistory records that a review was served to a session, with the
	// answer fields unset.
	CreateHistory(sessionID, reviewID int64) (*models.HistoryRecord, error)

	// SetHistoryAnswer fills in the answer fields of the history record for
	// the given session and review.
	SetHistoryAnswer(sessionID, reviewID, answer int64, correct bool) error

	// ListHistory returns every history record of a session, oldest first.
	ListHistory(sessionID int64) ([]models.HistoryRecord, error)

	// InTx runs fn against a transactional view of the store. Every write fn
	// performs is committed atomically; any error rolls the whole unit back
	// and is returned unchanged.
	InTx(fn func(Store) error) error
}
