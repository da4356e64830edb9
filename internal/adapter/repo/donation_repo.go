package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"donation-api/internal/domain"
	"donation-api/internal/infra"
	"donation-api/internal/sqlinline"
)

type donationDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    *string            `bson:"name,omitempty"`
	Phone   *string            `bson:"phone,omitempty"`
	Purpose *string            `bson:"purpose,omitempty"`
	Message *string            `bson:"message,omitempty"`
	Country string             `bson:"country,omitempty"`
	Date    time.Time          `bson:"date"`
}

func (d donationDocument) toDomain() domain.Donation {
	return domain.Donation{
		ID:      d.ID.Hex(),
		Name:    d.Name,
		Phone:   d.Phone,
		Purpose: d.Purpose,
		Message: d.Message,
		Country: d.Country,
		Date:    d.Date.UTC(),
	}
}

// DonationRepositoryMongo implements DonationRepository on a MongoDB collection.
type DonationRepositoryMongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewDonationRepositoryMongo creates a donation repository on db.donations.
func NewDonationRepositoryMongo(db *mongo.Database) *DonationRepositoryMongo {
	return &DonationRepositoryMongo{coll: db.Collection(donationsCollection), now: time.Now}
}

// Create stamps the donation with a new ObjectID and the current time, then inserts it.
func (r *DonationRepositoryMongo) Create(ctx context.Context, donation *domain.Donation) error {
	doc := donationDocument{
		ID:      primitive.NewObjectID(),
		Name:    donation.Name,
		Phone:   donation.Phone,
		Purpose: donation.Purpose,
		Message: donation.Message,
		Country: donation.Country,
		Date:    storedAt(r.now),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	*donation = doc.toDomain()
	return nil
}

// ListLatest returns every donation, newest first.
func (r *DonationRepositoryMongo) ListLatest(ctx context.Context) ([]domain.Donation, error) {
	docs, err := findLatest[donationDocument](ctx, r.coll)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Donation, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toDomain())
	}
	return items, nil
}

// EnsureIndexes creates the date index used by ListLatest.
func (r *DonationRepositoryMongo) EnsureIndexes(ctx context.Context) error {
	return ensureDateIndex(ctx, r.coll)
}

// DonationRepositoryPG implements DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	sql    infra.SQLExecutor
	schema *schemaGuard
	now    func() time.Time
}

// NewDonationRepositoryPG creates a new donation repo.
func NewDonationRepositoryPG(sql infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{
		sql:    sql,
		schema: newSchemaGuard(sql, sqlinline.QCreateDonationsTable),
		now:    time.Now,
	}
}

// Create inserts a new donation record.
func (r *DonationRepositoryPG) Create(ctx context.Context, donation *domain.Donation) error {
	if err := r.schema.ensure(ctx); err != nil {
		return err
	}
	stored := *donation
	stored.ID = uuid.NewString()
	stored.Date = r.now().UTC().Truncate(time.Microsecond)
	_, err := r.sql.Exec(ctx, sqlinline.QInsertDonation,
		stored.ID, stored.Name, stored.Phone, stored.Purpose, stored.Message, stored.Country, stored.Date)
	if err != nil {
		return fmt.Errorf("insert donation: %w", err)
	}
	*donation = stored
	return nil
}

// ListLatest returns every donation, newest first.
func (r *DonationRepositoryPG) ListLatest(ctx context.Context) ([]domain.Donation, error) {
	if err := r.schema.ensure(ctx); err != nil {
		return nil, err
	}
	rows, err := r.sql.Query(ctx, sqlinline.QListDonations)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Donation, 0)
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.Purpose, &d.Message, &d.Country, &d.Date); err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		d.Date = d.Date.UTC()
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return items, nil
}

var (
	_ domain.DonationRepository = (*DonationRepositoryMongo)(nil)
	_ domain.DonationRepository = (*DonationRepositoryPG)(nil)
)
