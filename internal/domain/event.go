package domain

import "time"

// SubmissionKind names the collection a submission was stored in.
type SubmissionKind string

const (
	SubmissionDonation SubmissionKind = "donation"
	SubmissionContact  SubmissionKind = "contact"
)

// SubmissionEvent is published after a donation or contact record is saved.
type SubmissionEvent struct {
	Kind     SubmissionKind `json:"kind"`
	RecordID string         `json:"record_id"`
	Name     string         `json:"name,omitempty"`
	Date     time.Time      `json:"date"`
	Payload  any            `json:"payload"`
}
