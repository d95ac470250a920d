package service

import (
	"fmt"
	"sync"

	"reelguess/internal/models"
)

// fakeStore is an in-memory Store for testing the game engine without a
// database. InTx snapshots the whole state and restores it when the callback
// fails, which mirrors the all-or-nothing commit of the SQL store. failOn
// injects an error into a named method; staleNext forces the next
// UpdateSession to report a lost version race.
type fakeStore struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	users     map[int64]*models.User
	sessions  map[int64]*models.Session
	history   []*models.HistoryRecord
	reviews   []*models.Review
	nextID    int64
	failOn    map[string]error
	staleNext bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[int64]*models.User),
		sessions: make(map[int64]*models.Session),
		failOn:   make(map[string]error),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) addUser() *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &models.User{ID: f.id(), Email: fmt.Sprintf("player%d@example.com", f.nextID), Name: "Player"}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) addReview(movieID int64, title, text string) *models.Review {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := &models.Review{ID: f.id(), MovieID: movieID, MovieTitle: title, Text: text}
	f.reviews = append(f.reviews, r)
	return r
}

// sessionState returns a copy of the stored session for assertions
func (f *fakeStore) sessionState(id int64) models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.sessions[id]
}

// patchSession mutates stored session fields directly, to set up mid-game
// states without playing through them
func (f *fakeStore) patchSession(id int64, patch func(*models.Session)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	patch(f.sessions[id])
}

func (f *fakeStore) fail(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failOn[method]
}

func (f *fakeStore) GetUser(id int64) (*models.User, error) {
	if err := f.fail("GetUser"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) UpdateUserStats(id int64, record, playCount int) error {
	if err := f.fail("UpdateUserStats"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("no user %d", id)
	}
	u.Record = record
	u.PlayCount = playCount
	return nil
}

func (f *fakeStore) GetSession(userID int64, activeOnly bool) (*models.Session, error) {
	if err := f.fail("GetSession"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *models.Session
	for _, s := range f.sessions {
		if s.UserID != userID {
			continue
		}
		if activeOnly && !s.IsActive {
			continue
		}
		if latest == nil || s.ID > latest.ID {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeStore) CreateSession(s *models.Session) (*models.Session, error) {
	if err := f.fail("CreateSession"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *s
	stored.ID = f.id()
	stored.Version = 1
	f.sessions[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (f *fakeStore) UpdateSession(s *models.Session) (bool, error) {
	if err := f.fail("UpdateSession"); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.staleNext {
		f.staleNext = false
		return false, nil
	}
	stored, ok := f.sessions[s.ID]
	if !ok || stored.Version != s.Version {
		return false, nil
	}
	updated := *s
	updated.Version++
	f.sessions[s.ID] = &updated
	s.Version++
	return true, nil
}

func (f *fakeStore) CountReviews() (int, error) {
	if err := f.fail("CountReviews"); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reviews), nil
}

func (f *fakeStore) ReviewAt(offset int) (*models.Review, error) {
	if err := f.fail("ReviewAt"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if offset < 0 || offset >= len(f.reviews) {
		return nil, nil
	}
	copied := *f.reviews[offset]
	return &copied, nil
}

func (f *fakeStore) GetReview(id int64) (*models.Review, error) {
	if err := f.fail("GetReview"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListMovies() ([]models.Movie, error) {
	if err := f.fail("ListMovies"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[int64]bool)
	var movies []models.Movie
	for _, r := range f.reviews {
		if !seen[r.MovieID] {
			seen[r.MovieID] = true
			movies = append(movies, models.Movie{ID: r.MovieID, Title: r.MovieTitle})
		}
	}
	return movies, nil
}

func (f *fakeStore) CreateHistory(sessionID, reviewID int64) (*models.HistoryRecord, error) {
	if err := f.fail("CreateHistory"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	h := &models.HistoryRecord{ID: f.id(), SessionID: sessionID, ReviewID: reviewID}
	f.history = append(f.history, h)
	copied := *h
	return &copied, nil
}

func (f *fakeStore) SetHistoryAnswer(sessionID, reviewID, answer int64, correct bool) error {
	if err := f.fail("SetHistoryAnswer"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.history {
		if h.SessionID == sessionID && h.ReviewID == reviewID && h.IsCorrect == nil {
			a, c := answer, correct
			h.SubmittedAnswer = &a
			h.IsCorrect = &c
			return nil
		}
	}
	return fmt.Errorf("no unanswered history record for session %d review %d", sessionID, reviewID)
}

func (f *fakeStore) ListHistory(sessionID int64) ([]models.HistoryRecord, error) {
	if err := f.fail("ListHistory"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var records []models.HistoryRecord
	for _, h := range f.history {
		if h.SessionID == sessionID {
			records = append(records, *h)
		}
	}
	return records, nil
}

// InTx runs fn against the fake and rolls every change back when it fails
func (f *fakeStore) InTx(fn func(Store) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()

	snapshot := f.clone()
	if err := fn(f); err != nil {
		f.restore(snapshot)
		return err
	}
	return nil
}

type fakeSnapshot struct {
	users    map[int64]*models.User
	sessions map[int64]*models.Session
	history  []*models.HistoryRecord
	nextID   int64
}

func (f *fakeStore) clone() fakeSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := fakeSnapshot{
		users:    make(map[int64]*models.User, len(f.users)),
		sessions: make(map[int64]*models.Session, len(f.sessions)),
		nextID:   f.nextID,
	}
	for id, u := range f.users {
		copied := *u
		snap.users[id] = &copied
	}
	for id, s := range f.sessions {
		copied := *s
		snap.sessions[id] = &copied
	}
	for _, h := range f.history {
		copied := *h
		snap.history = append(snap.history, &copied)
	}
	return snap
}

func (f *fakeStore) restore(snap fakeSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = snap.users
	f.sessions = snap.sessions
	f.history = snap.history
	f.nextID = snap.nextID
}
