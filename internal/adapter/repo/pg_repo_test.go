package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"donation-api/internal/domain"
	"donation-api/internal/sqlinline"
)

var fixedNow = time.Date(2025, 9, 1, 10, 0, 0, 123456789, time.UTC)

// textArg reads a form field argument passed to the fake executor.
func textArg(t *testing.T, arg any) (string, bool) {
	t.Helper()
	p, ok := arg.(*string)
	if !ok {
		t.Fatalf("argument %#v is not *string", arg)
	}
	if p == nil {
		return "", false
	}
	return *p, true
}

func TestDonationRepositoryPGCreate(t *testing.T) {
	sql := &fakeSQL{}
	r := NewDonationRepositoryPG(sql)
	r.now = func() time.Time { return fixedNow }

	d := domain.Donation{Name: domain.Text("Asha"), Phone: domain.Text(""), Message: domain.Text("hi"), Country: "IN"}
	if err := r.Create(context.Background(), &d); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := uuid.Parse(d.ID); err != nil {
		t.Fatalf("ID %q is not a uuid: %v", d.ID, err)
	}
	if want := fixedNow.Truncate(time.Microsecond); !d.Date.Equal(want) {
		t.Fatalf("Date = %v, want %v", d.Date, want)
	}

	if got := len(sql.execsMatching(sqlinline.QCreateDonationsTable)); got != 1 {
		t.Fatalf("schema bootstrap ran %d times, want 1", got)
	}
	inserts := sql.execsMatching(sqlinline.QInsertDonation)
	if len(inserts) != 1 {
		t.Fatalf("insert ran %d times, want 1", len(inserts))
	}
	args := inserts[0].args
	if len(args) != 7 || args[0] != d.ID || args[5] != "IN" {
		t.Fatalf("unexpected insert args: %#v", args)
	}
	if v, ok := textArg(t, args[1]); !ok || v != "Asha" {
		t.Fatalf("name arg = %q (present %v)", v, ok)
	}
	if v, ok := textArg(t, args[2]); !ok || v != "" {
		t.Fatalf("empty phone must be sent as an empty string, got %q (present %v)", v, ok)
	}
	if _, ok := textArg(t, args[3]); ok {
		t.Fatal("missing purpose must be sent as NULL")
	}

	if err := r.Create(context.Background(), &domain.Donation{}); err != nil {
		t.Fatalf("second Create() error: %v", err)
	}
	if got := len(sql.execsMatching(sqlinline.QCreateDonationsTable)); got != 1 {
		t.Fatalf("schema bootstrap ran %d times after success, want 1", got)
	}
}

func TestDonationRepositoryPGList(t *testing.T) {
	newer := fixedNow
	older := fixedNow.Add(-time.Hour)
	sql := &fakeSQL{rows: map[string][][]any{
		sqlinline.QListDonations: {
			{"b", "Newer", "", "puja", nil, "", newer},
			{"a", nil, "98", nil, "msg", "NP", older},
		},
	}}
	r := NewDonationRepositoryPG(sql)

	items, err := r.ListLatest(context.Background())
	if err != nil {
		t.Fatalf("ListLatest() error: %v", err)
	}
	if len(items) != 2 || items[0].ID != "b" || items[1].Country != "NP" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if items[0].Phone == nil || *items[0].Phone != "" {
		t.Fatalf("empty phone should survive the round trip, got %v", items[0].Phone)
	}
	if items[0].Message != nil || items[1].Name != nil {
		t.Fatalf("NULL columns should stay absent: %+v", items)
	}
}

func TestDonationRepositoryPGListEmpty(t *testing.T) {
	r := NewDonationRepositoryPG(&fakeSQL{})
	items, err := r.ListLatest(context.Background())
	if err != nil {
		t.Fatalf("ListLatest() error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("ListLatest() = %#v, want empty non-nil slice", items)
	}
}

func TestContactRepositoryPGRoundTrip(t *testing.T) {
	sql := &fakeSQL{rows: map[string][][]any{
		sqlinline.QListContacts: {{"c1", "", "a@x.com", "hi", "", fixedNow}},
	}}
	r := NewContactRepositoryPG(sql)
	r.now = func() time.Time { return fixedNow }

	c := domain.Contact{Name: domain.Text(""), Email: domain.Text("a@x.com"), Message: domain.Text("hi")}
	if err := r.Create(context.Background(), &c); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	inserts := sql.execsMatching(sqlinline.QInsertContact)
	if len(inserts) != 1 {
		t.Fatalf("unexpected inserts: %#v", inserts)
	}
	if v, ok := textArg(t, inserts[0].args[2]); !ok || v != "a@x.com" {
		t.Fatalf("email arg = %q", v)
	}
	if v, ok := textArg(t, inserts[0].args[1]); !ok || v != "" {
		t.Fatalf("empty name must be sent as an empty string, got %q (present %v)", v, ok)
	}

	items, err := r.ListLatest(context.Background())
	if err != nil {
		t.Fatalf("ListLatest() error: %v", err)
	}
	if len(items) != 1 || domain.TextValue(items[0].Email) != "a@x.com" || items[0].Name == nil {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestPGRepositoriesSurfaceStoreErrors(t *testing.T) {
	down := errors.New("dial tcp: connection refused")
	sql := &fakeSQL{execErr: down, queryErr: down}

	donations := NewDonationRepositoryPG(sql)
	if err := donations.Create(context.Background(), &domain.Donation{}); !errors.Is(err, down) {
		t.Fatalf("Create() error = %v, want wrapped %v", err, down)
	}
	if _, err := NewContactRepositoryPG(sql).ListLatest(context.Background()); !errors.Is(err, down) {
		t.Fatalf("ListLatest() error = %v, want wrapped %v", err, down)
	}
}

func TestSchemaGuardRetriesUntilSuccess(t *testing.T) {
	sql := &fakeSQL{execErr: errors.New("down")}
	g := newSchemaGuard(sql, sqlinline.QCreateContactsTable)

	if err := g.ensure(context.Background()); err == nil {
		t.Fatal("ensure() expected error while store is down")
	}
	sql.execErr = nil
	if err := g.ensure(context.Background()); err != nil {
		t.Fatalf("ensure() error after recovery: %v", err)
	}
	if err := g.ensure(context.Background()); err != nil {
		t.Fatalf("ensure() error: %v", err)
	}
	if got := len(sql.execsMatching(sqlinline.QCreateContactsTable)); got != 2 {
		t.Fatalf("bootstrap ran %d times, want 2", got)
	}
}
