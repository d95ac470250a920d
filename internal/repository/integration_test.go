package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"reelguess/internal/database"
	"reelguess/internal/models"
	"reelguess/internal/service"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return NewStore(db)
}

func seedUser(t *testing.T, store *Store) *models.User {
	t.Helper()
	users := NewUserRepository(store.db)
	user, err := users.CreateUser("player@example.com", "hash", "Player One")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func seedReview(t *testing.T, store *Store, title, body string) *models.Review {
	t.Helper()
	movieID, err := store.db.ExecReturningID("INSERT INTO movies (title, year) VALUES (?, ?)", title, 1999)
	if err != nil {
		t.Fatalf("Failed to insert movie: %v", err)
	}
	reviewID, err := store.db.ExecReturningID("INSERT INTO reviews (movie_id, body) VALUES (?, ?)", movieID, body)
	if err != nil {
		t.Fatalf("Failed to insert review: %v", err)
	}
	review, err := store.GetReview(reviewID)
	if err != nil {
		t.Fatalf("Failed to read review back: %v", err)
	}
	return review
}

func TestStoreUserLifecycle(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)

	got, err := store.GetUser(user.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got == nil || got.Email != "player@example.com" {
		t.Fatalf("GetUser = %+v, want seeded user", got)
	}

	if err := store.UpdateUserStats(user.ID, 12, 3); err != nil {
		t.Fatalf("UpdateUserStats failed: %v", err)
	}
	got, _ = store.GetUser(user.ID)
	if got.Record != 12 || got.PlayCount != 3 {
		t.Errorf("stats = record %d / plays %d, want 12 / 3", got.Record, got.PlayCount)
	}

	missing, err := store.GetUser(9999)
	if err != nil {
		t.Fatalf("GetUser on missing id failed: %v", err)
	}
	if missing != nil {
		t.Errorf("missing user should be nil, got %+v", missing)
	}
}

func TestStoreSessionVersioning(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)

	created, err := store.CreateSession(&models.Session{
		UserID:   user.ID,
		Lives:    models.StartingLives,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if created.Version != 1 {
		t.Errorf("new session version = %d, want 1", created.Version)
	}

	current, err := store.GetSession(user.ID, true)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if current == nil || current.ID != created.ID {
		t.Fatalf("GetSession = %+v, want session %d", current, created.ID)
	}

	current.Score = 5
	ok, err := store.UpdateSession(current)
	if err != nil {
		t.Fatalf("UpdateSession failed: %v", err)
	}
	if !ok {
		t.Fatal("first update should succeed")
	}
	if current.Version != 2 {
		t.Errorf("version after update = %d, want 2", current.Version)
	}

	// A writer still holding the old version must lose
	stale := *created
	stale.Score = 99
	ok, err = store.UpdateSession(&stale)
	if err != nil {
		t.Fatalf("stale UpdateSession failed: %v", err)
	}
	if ok {
		t.Error("stale update should report no rows")
	}

	reread, _ := store.GetSession(user.ID, true)
	if reread.Score != 5 {
		t.Errorf("score = %d, want 5 (stale write discarded)", reread.Score)
	}
}

func TestStoreHistoryWriteOnce(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)
	review := seedReview(t, store, "First Movie", "a review")

	session, err := store.CreateSession(&models.Session{
		UserID:   user.ID,
		Lives:    models.StartingLives,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	record, err := store.CreateHistory(session.ID, review.ID)
	if err != nil {
		t.Fatalf("CreateHistory failed: %v", err)
	}
	if record.Answered() {
		t.Error("fresh history record should be unanswered")
	}

	// Serving the same review twice in one session violates the unique key
	if _, err := store.CreateHistory(session.ID, review.ID); err == nil {
		t.Error("duplicate history insert should fail")
	}

	if err := store.SetHistoryAnswer(session.ID, review.ID, review.MovieID, true); err != nil {
		t.Fatalf("SetHistoryAnswer failed: %v", err)
	}

	// The answer is write-once
	if err := store.SetHistoryAnswer(session.ID, review.ID, review.MovieID, false); err == nil {
		t.Error("second SetHistoryAnswer should fail")
	}

	history, err := store.ListHistory(session.ID)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history records = %d, want 1", len(history))
	}
	if !history[0].Answered() || !*history[0].IsCorrect {
		t.Errorf("history record = %+v, want answered correct", history[0])
	}
}

func TestStoreReviewSampling(t *testing.T) {
	store := newTestStore(t)
	first := seedReview(t, store, "First Movie", "a review")
	second := seedReview(t, store, "Second Movie", "another review")

	count, err := store.CountReviews()
	if err != nil {
		t.Fatalf("CountReviews failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("CountReviews = %d, want 2", count)
	}

	// Offsets follow id order
	at0, err := store.ReviewAt(0)
	if err != nil {
		t.Fatalf("ReviewAt(0) failed: %v", err)
	}
	at1, err := store.ReviewAt(1)
	if err != nil {
		t.Fatalf("ReviewAt(1) failed: %v", err)
	}
	if at0.ID != first.ID || at1.ID != second.ID {
		t.Errorf("offsets = %d, %d, want %d, %d", at0.ID, at1.ID, first.ID, second.ID)
	}
	if at1.MovieTitle != "Second Movie" {
		t.Errorf("MovieTitle = %q, want joined title", at1.MovieTitle)
	}

	past, err := store.ReviewAt(2)
	if err != nil {
		t.Fatalf("ReviewAt past end failed: %v", err)
	}
	if past != nil {
		t.Errorf("ReviewAt past end = %+v, want nil", past)
	}

	movies, err := store.ListMovies()
	if err != nil {
		t.Fatalf("ListMovies failed: %v", err)
	}
	if len(movies) != 2 {
		t.Errorf("movies = %d, want 2", len(movies))
	}
}

func TestStoreInTxRollsBack(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)

	boom := errors.New("boom")
	err := store.InTx(func(tx service.Store) error {
		if err := tx.UpdateUserStats(user.ID, 50, 50); err != nil {
			return err
		}
		if _, err := tx.CreateSession(&models.Session{
			UserID:   user.ID,
			Lives:    models.StartingLives,
			IsActive: true,
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("InTx error = %v, want boom", err)
	}

	got, _ := store.GetUser(user.ID)
	if got.Record != 0 || got.PlayCount != 0 {
		t.Errorf("stats should be rolled back, got record %d / plays %d", got.Record, got.PlayCount)
	}
	session, _ := store.GetSession(user.ID, false)
	if session != nil {
		t.Errorf("session should be rolled back, got %+v", session)
	}
}

func TestStoreInTxCommits(t *testing.T) {
	store := newTestStore(t)
	user := seedUser(t, store)

	err := store.InTx(func(tx service.Store) error {
		if err := tx.UpdateUserStats(user.ID, 0, 1); err != nil {
			return err
		}
		_, err := tx.CreateSession(&models.Session{
			UserID:   user.ID,
			Lives:    models.StartingLives,
			IsActive: true,
		})
		return err
	})
	if err != nil {
		t.Fatalf("InTx failed: %v", err)
	}

	got, _ := store.GetUser(user.ID)
	if got.PlayCount != 1 {
		t.Errorf("PlayCount = %d, want 1", got.PlayCount)
	}
	session, err := store.GetSession(user.ID, true)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if session == nil || session.Lives != models.StartingLives {
		t.Errorf("session = %+v, want committed active session", session)
	}
}
