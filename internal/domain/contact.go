package domain

import "time"

// Contact represents a message left through the contact form.
type Contact struct {
	ID      string    `json:"_id"`
	Name    *string   `json:"name,omitempty"`
	Email   *string   `json:"email,omitempty"`
	Message *string   `json:"message,omitempty"`
	Country string    `json:"country,omitempty"`
	Date    time.Time `json:"date"`
}
