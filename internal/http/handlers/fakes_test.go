package handlers

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"donation-api/internal/domain"
	"donation-api/internal/metrics"
)

// memoryStore keeps records in insertion order and stamps them like the real
// repositories do.
type memoryStore struct {
	mu        sync.Mutex
	clock     func() time.Time
	seq       int
	donations []domain.Donation
	contacts  []domain.Contact
	err       error
}

func newMemoryStore() *memoryStore {
	base := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	var tick int
	return &memoryStore{clock: func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}}
}

func (m *memoryStore) nextID() string {
	m.seq++
	return fmt.Sprintf("%024x", m.seq)
}

type memoryDonations struct{ *memoryStore }

func (m memoryDonations) Create(_ context.Context, d *domain.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	d.ID = m.nextID()
	d.Date = m.clock()
	m.donations = append(m.donations, *d)
	return nil
}

func (m memoryDonations) ListLatest(context.Context) ([]domain.Donation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := append([]domain.Donation(nil), m.donations...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

type memoryContacts struct{ *memoryStore }

func (m memoryContacts) Create(_ context.Context, c *domain.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	c.ID = m.nextID()
	c.Date = m.clock()
	m.contacts = append(m.contacts, *c)
	return nil
}

func (m memoryContacts) ListLatest(context.Context) ([]domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := append([]domain.Contact(nil), m.contacts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memoryStore) Ping(context.Context) error { return m.err }

type recordingPublisher struct {
	events []domain.SubmissionEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.SubmissionEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func newTestApp(store *memoryStore) *App {
	app := NewApp(memoryDonations{store}, memoryContacts{store}, store, zerolog.Nop())
	app.Metrics = metrics.New()
	return app
}
