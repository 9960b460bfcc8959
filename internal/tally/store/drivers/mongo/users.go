package mongo

import (
	"context"
	"time"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/internal/tally/store"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// userFields are the document fields shared with accounts created by the
// earlier Node service, which also wrote __v and per-entry _id fields that
// are ignored on read and dropped on save.
type userFields struct {
	Username    string       `bson:"username"`
	Password    string       `bson:"password"`
	FinanceData []financeDoc `bson:"financeData"`
	CreatedAt   time.Time    `bson:"createdAt,omitempty"`
	UpdatedAt   time.Time    `bson:"updatedAt,omitempty"`
}

// newUserDoc is inserted for accounts created here, keyed by a ULID string.
type newUserDoc struct {
	ID          string       `bson:"_id"`
	Username    string       `bson:"username"`
	Password    string       `bson:"password"`
	FinanceData []financeDoc `bson:"financeData"`
	CreatedAt   time.Time    `bson:"createdAt"`
	UpdatedAt   time.Time    `bson:"updatedAt"`
}

// storedUserDoc is read back. Older accounts carry an ObjectID _id.
type storedUserDoc struct {
	ID          bson.RawValue `bson:"_id"`
	Username    string        `bson:"username"`
	Password    string        `bson:"password"`
	FinanceData []financeDoc  `bson:"financeData"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}

type financeDoc struct {
	Month    string  `bson:"month"`
	Income   float64 `bson:"income"`
	Expenses float64 `bson:"expenses"`
	Savings  float64 `bson:"savings"`
}

type usersRepo struct {
	coll *mongo.Collection
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	var doc storedUserDoc
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(doc), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	f := toFields(u)
	_, err := r.coll.InsertOne(ctx, newUserDoc{
		ID:          u.ID,
		Username:    f.Username,
		Password:    f.Password,
		FinanceData: f.FinanceData,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	})
	return mapDuplicate(err)
}

func (r *usersRepo) SaveUser(ctx context.Context, u domain.User) error {
	u.UpdatedAt = time.Now().UTC()

	// Matched on the immutable username; the replacement has no _id, so the
	// stored one is kept whatever its type.
	res, err := r.coll.ReplaceOne(ctx, bson.M{"username": u.Username}, toFields(u))
	if err != nil {
		return mapDuplicate(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func toFields(u domain.User) userFields {
	entries := make([]financeDoc, 0, len(u.FinanceEntries))
	for _, e := range u.FinanceEntries {
		entries = append(entries, financeDoc(e))
	}
	return userFields{
		Username:    u.Username,
		Password:    u.PasswordHash,
		FinanceData: entries,
		CreatedAt:   u.CreatedAt.UTC(),
		UpdatedAt:   u.UpdatedAt.UTC(),
	}
}

func mapUser(doc storedUserDoc) domain.User {
	entries := make([]domain.FinanceEntry, 0, len(doc.FinanceData))
	for _, e := range doc.FinanceData {
		entries = append(entries, domain.FinanceEntry(e))
	}
	return domain.User{
		ID:             idString(doc.ID),
		Username:       doc.Username,
		PasswordHash:   doc.Password,
		FinanceEntries: entries,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}

// idString renders _id as the string form used in tokens and logs: the
// hex of an ObjectID, or the stored string.
func idString(v bson.RawValue) string {
	switch v.Type {
	case bson.TypeObjectID:
		return v.ObjectID().Hex()
	case bson.TypeString:
		return v.StringValue()
	case 0:
		return ""
	default:
		return v.String()
	}
}
