package models

import (
	"fmt"
	"time"
)

// Swipe is one recruiter decision on one resume. Rows are append-only: once
// written they are never updated or deleted.
type Swipe struct {
	ID          int64     `db:"id" json:"id"`
	ResumeID    string    `db:"resume_id" json:"resume_id"`
	RecruiterID int64     `db:"recruiter_id" json:"recruiter_id"`
	Label       int       `db:"label" json:"label"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

const (
	// LabelPass means the recruiter rejected the resume.
	LabelPass = 0
	// LabelMash means the recruiter accepted ("liked") the resume.
	LabelMash = 1
)

// ParseLabel maps the wire form of a swipe choice to its stored label.
func ParseLabel(s string) (int, error) {
	switch s {
	case "mash", "like", "accept":
		return LabelMash, nil
	case "pass", "reject":
		return LabelPass, nil
	default:
		return 0, fmt.Errorf("unknown swipe label %q", s)
	}
}

// LabelName is the wire form of a stored label.
func LabelName(label int) string {
	if label == LabelMash {
		return "mash"
	}
	return "pass"
}
