package handlers

import "reelguess/internal/models"

// Response DTOs. The review view deliberately has no movie field: the target
// answer is only revealed in the answer view, after the guess is scored.

type sessionView struct {
	ID              int64  `json:"id"`
	Lives           int    `json:"lives"`
	Score           int    `json:"score"`
	Combo           int    `json:"combo"`
	IsActive        bool   `json:"isActive"`
	PendingReviewID *int64 `json:"pendingReviewId,omitempty"`
}

type reviewView struct {
	ReviewID int64  `json:"reviewId"`
	Text     string `json:"text"`
}

type answerView struct {
	Correct    bool        `json:"correct"`
	MovieID    int64       `json:"movieId"`
	MovieTitle string      `json:"movieTitle"`
	NewRecord  bool        `json:"newRecord"`
	Ended      bool        `json:"sessionEnded"`
	Session    sessionView `json:"session"`
}

type movieView struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year"`
}

type userView struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Record    int    `json:"record"`
	PlayCount int    `json:"playCount"`
}

func newSessionView(s *models.Session) sessionView {
	return sessionView{
		ID:              s.ID,
		Lives:           s.Lives,
		Score:           s.Score,
		Combo:           s.Combo,
		IsActive:        s.IsActive,
		PendingReviewID: s.PendingReviewID,
	}
}

func newUserView(u *models.User) userView {
	return userView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Record:    u.Record,
		PlayCount: u.PlayCount,
	}
}
