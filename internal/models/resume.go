package models

import "time"

type Resume struct {
	ID          string    `db:"id" json:"id"`
	CandidateID int64     `db:"candidate_id" json:"candidate_id"`
	Text        string    `db:"text" json:"text"`
	JobField    string    `db:"job_field" json:"job_field"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// TrainingExample is one (resume text, swipe label) pair as consumed by the
// trainer. Ordering of examples carries no meaning.
type TrainingExample struct {
	Text  string `db:"text"`
	Label int    `db:"label"`
}
