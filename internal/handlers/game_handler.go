package handlers

import (
	"encoding/json"
	"net/http"

	"reelguess/internal/service"
	"reelguess/internal/validation"
)

// GameHandler exposes the game engine over HTTP. It only shapes requests and
// responses; every rule lives in the service.
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

type answerRequest struct {
	ReviewID int64 `json:"reviewId"`
	MovieID  int64 `json:"movieId"`
}

// CreateSession starts a new play-through for the authenticated user
func (h *GameHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	session, err := h.gameService.CreateSession(userID)
	if err != nil {
		respondWithGameError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newSessionView(session))
}

// GetCurrentSession returns the user's active session
func (h *GameHandler) GetCurrentSession(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	session, err := h.gameService.GetActiveSession(userID)
	if err != nil {
		respondWithGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionView(session))
}

// NextReview serves the next review to guess. The target movie is stripped
// here: players only ever see the review id and text.
func (h *GameHandler) NextReview(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	review, err := h.gameService.RequestReview(userID)
	if err != nil {
		respondWithGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reviewView{ReviewID: review.ID, Text: review.Text})
}

// SubmitAnswer scores a guess against the pending review
func (h *GameHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validation.ValidateID("reviewId", req.ReviewID); err != nil {
		respondWithGameError(w, err)
		return
	}
	if err := validation.ValidateID("movieId", req.MovieID); err != nil {
		respondWithGameError(w, err)
		return
	}

	result, err := h.gameService.SubmitAnswer(userID, req.ReviewID, req.MovieID)
	if err != nil {
		respondWithGameError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answerView{
		Correct:    result.IsCorrect,
		MovieID:    result.MovieID,
		MovieTitle: result.MovieTitle,
		NewRecord:  result.NewRecord,
		Ended:      result.Ended,
		Session:    newSessionView(&result.Session),
	})
}

// ListMovies returns the guessable movies so clients can offer choices
func (h *GameHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.gameService.ListMovies()
	if err != nil {
		respondWithGameError(w, err)
		return
	}

	views := make([]movieView, 0, len(movies))
	for _, m := range movies {
		views = append(views, movieView{ID: m.ID, Title: m.Title, Year: m.Year})
	}
	writeJSON(w, http.StatusOK, views)
}
