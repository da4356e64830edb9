package repo

import (
	"context"
	"fmt"

	"donation-api/internal/domain"
)

// unavailable stands in for every repository when the store client could not
// be built at startup. Operations fail with the startup error so the HTTP
// layer keeps serving and reports the outage per request.
type unavailable struct {
	cause error
}

func (u unavailable) err() error {
	if u.cause == nil {
		return domain.ErrStoreUnavailable
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, u.cause)
}

func (u unavailable) Ping(context.Context) error { return u.err() }

type unavailableDonations struct{ unavailable }

func (u unavailableDonations) Create(context.Context, *domain.Donation) error { return u.err() }

func (u unavailableDonations) ListLatest(context.Context) ([]domain.Donation, error) {
	return nil, u.err()
}

type unavailableContacts struct{ unavailable }

func (u unavailableContacts) Create(context.Context, *domain.Contact) error { return u.err() }

func (u unavailableContacts) ListLatest(context.Context) ([]domain.Contact, error) {
	return nil, u.err()
}
