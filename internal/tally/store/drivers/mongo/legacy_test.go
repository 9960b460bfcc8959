package mongo

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/internal/tally/service"
	"github.com/aussiebroadwan/tally/pkg/cryptox"
	"github.com/aussiebroadwan/tally/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// mongooseUser builds a user document the way the Node service stored it:
// ObjectID _id, int32 numbers, __v and an _id on every entry.
func mongooseUser(t *testing.T, id bson.ObjectID, username, password string) bson.D {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	return bson.D{
		{Key: "_id", Value: id},
		{Key: "username", Value: username},
		{Key: "password", Value: strings.Replace(hash, "$2a$", "$2b$", 1)},
		{Key: "financeData", Value: bson.A{
			bson.D{
				{Key: "_id", Value: bson.NewObjectID()},
				{Key: "month", Value: "Feb"},
				{Key: "income", Value: int32(2000)},
				{Key: "expenses", Value: int32(1500)},
				{Key: "savings", Value: int32(500)},
			},
		}},
		{Key: "__v", Value: int32(0)},
	}
}

func TestDecodeLegacyUserDocument(t *testing.T) {
	id := bson.NewObjectID()
	raw, err := bson.Marshal(mongooseUser(t, id, "carol", "pw"))
	require.NoError(t, err)

	var doc storedUserDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))

	u := mapUser(doc)
	require.Equal(t, id.Hex(), u.ID)
	require.Equal(t, "carol", u.Username)
	require.Equal(t, []domain.FinanceEntry{
		{Month: "Feb", Income: 2000, Expenses: 1500, Savings: 500},
	}, u.FinanceEntries)
	require.True(t, u.CreatedAt.IsZero())
}

func TestDecodeUserDocumentWithStringID(t *testing.T) {
	raw, err := bson.Marshal(newUserDoc{ID: "01HZX0000000000000000000AA", Username: "dan", Password: "h"})
	require.NoError(t, err)

	var doc storedUserDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))
	require.Equal(t, "01HZX0000000000000000000AA", mapUser(doc).ID)
}

func TestMongoLegacyAccounts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	s, err := NewStore(setupMongoContainer(t), "loginApp", 10*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	require.NoError(t, s.ApplyMigrations())

	id := bson.NewObjectID()
	_, err = s.users().InsertOne(ctx, mongooseUser(t, id, "carol", "p@ss"))
	require.NoError(t, err)

	signer, err := jwtx.NewSignerHS256([]byte("mongo-legacy-secret"))
	require.NoError(t, err)
	accounts := &service.AccountService{Store: s, Signer: signer, Issuer: "tally", TokenTTL: jwtx.AccessTokenTTL}
	finance := &service.FinanceService{Store: s}

	token, err := accounts.Authenticate(ctx, "carol", "p@ss")
	require.NoError(t, err)
	claims, err := jwtx.NewVerifierHS256([]byte("mongo-legacy-secret"), "tally").Verify(token)
	require.NoError(t, err)
	require.Equal(t, id.Hex(), claims.UserID)

	require.ErrorIs(t, accounts.Register(ctx, "carol", "other"), service.ErrUsernameTaken)

	require.NoError(t, finance.AddEntry(ctx, service.EntryInput{
		Username: "carol", Month: "Mar", Income: float(3000), Expenses: float(1000),
	}))

	entries, err := finance.GetEntries(ctx, "carol")
	require.NoError(t, err)
	require.Equal(t, []domain.FinanceEntry{
		{Month: "Feb", Income: 2000, Expenses: 1500, Savings: 500},
		{Month: "Mar", Income: 3000, Expenses: 1000, Savings: 2000},
	}, entries)

	// The document keeps its ObjectID key after being saved.
	var stored struct {
		ID bson.RawValue `bson:"_id"`
	}
	require.NoError(t, s.users().FindOne(ctx, bson.M{"username": "carol"}).Decode(&stored))
	require.Equal(t, bson.TypeObjectID, stored.ID.Type)
	require.Equal(t, id, stored.ID.ObjectID())

	require.NoError(t, finance.DeleteEntry(ctx, "carol", "Feb"))
	entries, err = finance.GetEntries(ctx, "carol")
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func float(v float64) *float64 { return &v }
