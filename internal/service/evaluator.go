package service

import "reelguess/internal/models"

// Outcome is the result of applying one answer to a session.
type Outcome struct {
	IsCorrect bool
	Session   models.Session
	Record    int  // user's high score after the answer
	NewRecord bool // whether the answer pushed the high score up
	Ended     bool // whether the session ran out of lives
}

// evaluateAnswer applies the scoring rules to a copy of the session and
// returns the resulting state. Pure: no I/O, no clock, no randomness.
//
// A correct answer extends the combo and adds exactly one point; every
// ComboBonusEvery-th consecutive hit grants a bonus life up to MaxLives. A
// miss resets the combo and costs a life; at zero lives the session ends and
// can never be reactivated.
func evaluateAnswer(sess models.Session, record int, correct bool) Outcome {
	out := Outcome{IsCorrect: correct, Record: record}

	if correct {
		sess.Combo++
		sess.Score++
		if sess.Combo%models.ComboBonusEvery == 0 && sess.Lives < models.MaxLives {
			sess.Lives++
		}
		if sess.Score > record {
			out.Record = sess.Score
			out.NewRecord = true
		}
	} else {
		sess.Combo = 0
		sess.Lives--
		if sess.Lives <= 0 {
			sess.Lives = 0
			sess.IsActive = false
			out.Ended = true
		}
	}

	sess.PendingReviewID = nil
	out.Session = sess
	return out
}
