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

type contactDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    *string            `bson:"name,omitempty"`
	Email   *string            `bson:"email,omitempty"`
	Message *string            `bson:"message,omitempty"`
	Country string             `bson:"country,omitempty"`
	Date    time.Time          `bson:"date"`
}

func (d contactDocument) toDomain() domain.Contact {
	return domain.Contact{
		ID:      d.ID.Hex(),
		Name:    d.Name,
		Email:   d.Email,
		Message: d.Message,
		Country: d.Country,
		Date:    d.Date.UTC(),
	}
}

// ContactRepositoryMongo implements ContactRepository on a MongoDB collection.
type ContactRepositoryMongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewContactRepositoryMongo(db *mongo.Database) *ContactRepositoryMongo {
	return &ContactRepositoryMongo{coll: db.Collection(contactsCollection), now: time.Now}
}

func (r *ContactRepositoryMongo) Create(ctx context.Context, contact *domain.Contact) error {
	doc := contactDocument{
		ID:      primitive.NewObjectID(),
		Name:    contact.Name,
		Email:   contact.Email,
		Message: contact.Message,
		Country: contact.Country,
		Date:    storedAt(r.now),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	*contact = doc.toDomain()
	return nil
}

func (r *ContactRepositoryMongo) ListLatest(ctx context.Context) ([]domain.Contact, error) {
	docs, err := findLatest[contactDocument](ctx, r.coll)
	if err != nil {
		return nil, err
	}
	items := make([]domain.Contact, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toDomain())
	}
	return items, nil
}

func (r *ContactRepositoryMongo) EnsureIndexes(ctx context.Context) error {
	return ensureDateIndex(ctx, r.coll)
}

// ContactRepositoryPG implements ContactRepository using PostgreSQL.
type ContactRepositoryPG struct {
	sql    infra.SQLExecutor
	schema *schemaGuard
	now    func() time.Time
}

func NewContactRepositoryPG(sql infra.SQLExecutor) *ContactRepositoryPG {
	return &ContactRepositoryPG{
		sql:    sql,
		schema: newSchemaGuard(sql, sqlinline.QCreateContactsTable),
		now:    time.Now,
	}
}

func (r *ContactRepositoryPG) Create(ctx context.Context, contact *domain.Contact) error {
	if err := r.schema.ensure(ctx); err != nil {
		return err
	}
	stored := *contact
	stored.ID = uuid.NewString()
	stored.Date = r.now().UTC().Truncate(time.Microsecond)
	_, err := r.sql.Exec(ctx, sqlinline.QInsertContact,
		stored.ID, stored.Name, stored.Email, stored.Message, stored.Country, stored.Date)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	*contact = stored
	return nil
}

func (r *ContactRepositoryPG) ListLatest(ctx context.Context) ([]domain.Contact, error) {
	if err := r.schema.ensure(ctx); err != nil {
		return nil, err
	}
	rows, err := r.sql.Query(ctx, sqlinline.QListContacts)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Contact, 0)
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.Country, &c.Date); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.Date = c.Date.UTC()
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return items, nil
}

var (
	_ domain.ContactRepository = (*ContactRepositoryMongo)(nil)
	_ domain.ContactRepository = (*ContactRepositoryPG)(nil)
)
