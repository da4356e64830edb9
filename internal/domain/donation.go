package domain

import "time"

// Donation represents a donation form submission. Form fields are nil when
// the submitter left them out; an empty string is kept as sent.
type Donation struct {
	ID      string    `json:"_id"`
	Name    *string   `json:"name,omitempty"`
	Phone   *string   `json:"phone,omitempty"`
	Purpose *string   `json:"purpose,omitempty"`
	Message *string   `json:"message,omitempty"`
	Country string    `json:"country,omitempty"`
	Date    time.Time `json:"date"`
}
