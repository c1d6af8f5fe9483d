// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"appeal-archive/internal/db"
	"appeal-archive/internal/models"
)

// NewStore opens a private in-memory SQLite store closed at test cleanup.
func NewStore(t *testing.T) *db.Store {
	t.Helper()
	conn, err := db.Open(context.Background(), db.SQLite, ":memory:")
	require.NoError(t, err)
	store := db.NewStore(conn, db.SQLite)
	t.Cleanup(func() { store.Close() })
	return store
}

// Fixture holds the ids created by SeedAppeals.
type Fixture struct {
	Housing int64
	Roads   int64
}

// SeedAppeals inserts two categories and appeals spread around today:
// two inside the last year (one per status) and two older ones.
func SeedAppeals(t *testing.T, store *db.Store, today time.Time) Fixture {
	t.Helper()
	ctx := context.Background()

	housing, err := store.CreateCategory(ctx, "ЖКХ")
	require.NoError(t, err)
	roads, err := store.CreateCategory(ctx, "Дороги")
	require.NoError(t, err)

	appeals := []models.Appeal{
		{Number: "A-1", Date: models.DateOf(today.AddDate(0, 0, -10)), CategoryID: housing, Status: "открыто", Subject: "recent open"},
		{Number: "A-2", Date: models.DateOf(today.AddDate(0, -3, 0)), CategoryID: roads, Status: "закрыто", Subject: "recent closed"},
		{Number: "A-3", Date: models.DateOf(today.AddDate(-2, 0, 0)), CategoryID: housing, Status: "закрыто", Subject: "old closed"},
		{Number: "A-4", Date: models.DateOf(today.AddDate(-3, 0, 0)), CategoryID: roads, Status: "открыто", Subject: "old open"},
	}
	for _, a := range appeals {
		_, err := store.CreateAppeal(ctx, a)
		require.NoError(t, err)
	}
	return Fixture{Housing: housing, Roads: roads}
}

// Numbers lists appeal numbers in order, for compact assertions.
func Numbers(appeals []models.Appeal) []string {
	out := make([]string, 0, len(appeals))
	for _, a := range appeals {
		out = append(out, a.Number)
	}
	return out
}
