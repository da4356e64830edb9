package domain

import "context"

// DonationRepository handles donation persistence.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	ListLatest(ctx context.Context) ([]Donation, error)
}

// ContactRepository handles contact message persistence.
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	ListLatest(ctx context.Context) ([]Contact, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SubmissionPublisher announces freshly stored submissions to downstream consumers.
type SubmissionPublisher interface {
	Publish(ctx context.Context, event SubmissionEvent) error
}
