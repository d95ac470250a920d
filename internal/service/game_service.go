package service

import (
	"reelguess/internal/models"
)

// GameService orchestrates the guessing game: session lifecycle, review
// delivery and answer scoring. All persistence goes through the injected
// Store; all mutations for a given user are serialized by a per-user lock,
// with the session version token as a commit-time backstop.
type GameService struct {
	store    Store
	selector *Selector
	locks    *userLocks
}

// NewGameService creates a game service on top of the given store and
// review selector.
func NewGameService(store Store, selector *Selector) *GameService {
	return &GameService{
		store:    store,
		selector: selector,
		locks:    newUserLocks(),
	}
}

// AnswerResult is what a player gets back for one submitted answer: the
// verdict, the revealed movie, and the session state after scoring.
type AnswerResult struct {
	IsCorrect  bool
	MovieID    int64
	MovieTitle string
	NewRecord  bool
	Ended      bool
	Session    models.Session
}

// CreateSession starts a new play-through for the user. It fails with
// ConflictError when the user already has an active session. The play-count
// bump and the session row are committed as one unit.
func (s *GameService) CreateSession(userID int64) (*models.Session, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, storeErr("get user", err)
	}
	if user == nil {
		return nil, NotFoundError{Resource: "user"}
	}

	active, err := s.store.GetSession(userID, true)
	if err != nil {
		return nil, storeErr("get session", err)
	}
	if active != nil {
		return nil, ConflictError{Reason: "active session exists"}
	}

	var created *models.Session
	err = s.store.InTx(func(tx Store) error {
		if err := tx.UpdateUserStats(userID, user.Record, user.PlayCount+1); err != nil {
			return storeErr("update user", err)
		}
		created, err = tx.CreateSession(&models.Session{
			UserID:   userID,
			Lives:    models.StartingLives,
			IsActive: true,
		})
		if err != nil {
			return storeErr("create session", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetActiveSession returns the user's active session, or NotFoundError when
// there is none.
func (s *GameService) GetActiveSession(userID int64) (*models.Session, error) {
	sess, err := s.store.GetSession(userID, true)
	if err != nil {
		return nil, storeErr("get session", err)
	}
	if sess == nil {
		return nil, NotFoundError{Resource: "session"}
	}
	return sess, nil
}

// RequestReview serves the next review for the user's session. The returned
// review includes its target movie, which the transport layer must strip
// before showing it to the player.
//
// When a review is already pending the same review is served again rather
// than drawing a fresh one, so a retried request cannot orphan a history
// record.
func (s *GameService) RequestReview(userID int64) (*models.Review, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	sess, err := s.playableSession(userID)
	if err != nil {
		return nil, err
	}

	if sess.HasPendingReview() {
		review, err := s.store.GetReview(*sess.PendingReviewID)
		if err != nil {
			return nil, storeErr("get review", err)
		}
		if review == nil {
			return nil, NotFoundError{Resource: "review"}
		}
		return review, nil
	}

	review, err := s.selector.Pick(s.store, sess.ID)
	if err != nil {
		return nil, err
	}

	err = s.store.InTx(func(tx Store) error {
		if _, err := tx.CreateHistory(sess.ID, review.ID); err != nil {
			return storeErr("create history", err)
		}
		sess.PendingReviewID = &review.ID
		ok, err := tx.UpdateSession(sess)
		if err != nil {
			return storeErr("update session", err)
		}
		if !ok {
			return ConflictError{Reason: "stale session"}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// SubmitAnswer scores the user's guess against the pending review. The
// answer is the guessed movie id; correctness is movie identity equality.
// History, session and user record are committed as one atomic unit.
func (s *GameService) SubmitAnswer(userID, reviewID, guessedMovieID int64) (*AnswerResult, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	sess, err := s.playableSession(userID)
	if err != nil {
		return nil, err
	}
	if !sess.HasPendingReview() {
		return nil, ConflictError{Reason: "no pending review"}
	}
	if *sess.PendingReviewID != reviewID {
		return nil, ConflictError{Reason: "review mismatch"}
	}

	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, storeErr("get user", err)
	}
	if user == nil {
		return nil, NotFoundError{Resource: "user"}
	}

	review, err := s.store.GetReview(reviewID)
	if err != nil {
		return nil, storeErr("get review", err)
	}
	if review == nil {
		return nil, NotFoundError{Resource: "review"}
	}

	out := evaluateAnswer(*sess, user.Record, guessedMovieID == review.MovieID)

	err = s.store.InTx(func(tx Store) error {
		if err := tx.SetHistoryAnswer(sess.ID, reviewID, guessedMovieID, out.IsCorrect); err != nil {
			return storeErr("update history", err)
		}
		ok, err := tx.UpdateSession(&out.Session)
		if err != nil {
			return storeErr("update session", err)
		}
		if !ok {
			return ConflictError{Reason: "stale session"}
		}
		if out.NewRecord {
			if err := tx.UpdateUserStats(userID, out.Record, user.PlayCount); err != nil {
				return storeErr("update user", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AnswerResult{
		IsCorrect:  out.IsCorrect,
		MovieID:    review.MovieID,
		MovieTitle: review.MovieTitle,
		NewRecord:  out.NewRecord,
		Ended:      out.Ended,
		Session:    out.Session,
	}, nil
}

// ListMovies returns the guessable movies so clients can present choices.
func (s *GameService) ListMovies() ([]models.Movie, error) {
	movies, err := s.store.ListMovies()
	if err != nil {
		return nil, storeErr("list movies", err)
	}
	return movies, nil
}

// playableSession resolves the user's latest session and checks it can still
// accept game operations. An ended session is a conflict, not a not-found: it
// exists but is terminal.
func (s *GameService) playableSession(userID int64) (*models.Session, error) {
	sess, err := s.store.GetSession(userID, false)
	if err != nil {
		return nil, storeErr("get session", err)
	}
	if sess == nil {
		return nil, NotFoundError{Resource: "session"}
	}
	if !sess.IsActive {
		return nil, ConflictError{Reason: "session ended"}
	}
	return sess, nil
}
