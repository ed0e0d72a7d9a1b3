package models

import "time"

// SwipeSession is one recruiter's in-progress pass over a field's resumes.
// Order is a snapshot taken when the session started; resumes uploaded later
// do not join the current pass. The cursor only moves forward; Reset builds a
// new session instead of rewinding this one.
type SwipeSession struct {
	RecruiterID int64     `json:"recruiter_id"`
	JobField    string    `json:"job_field"`
	Order       []string  `json:"order"`
	Cursor      int       `json:"cursor"`
	StartedAt   time.Time `json:"started_at"`
}

// Remaining reports how many resumes are left in this pass.
func (s *SwipeSession) Remaining() int {
	if s.Cursor >= len(s.Order) {
		return 0
	}
	return len(s.Order) - s.Cursor
}
