package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appeal-archive/internal/db"
	"appeal-archive/internal/models"
	"appeal-archive/internal/testutil"
)

func TestListAppealsOrderAndWhere(t *testing.T) {
	store := testutil.NewStore(t)
	today := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	fx := testutil.SeedAppeals(t, store, today)
	ctx := context.Background()

	all, err := store.ListAppeals(ctx, "", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A-1", "A-2", "A-3", "A-4"}, testutil.Numbers(all))
	assert.Equal(t, "ЖКХ", all[0].CategoryName)
	assert.Equal(t, "2026-10-09", all[0].Date.String())

	housing, err := store.ListAppeals(ctx, "a.category_id = ?", []any{fx.Housing})
	require.NoError(t, err)
	assert.Equal(t, []string{"A-1", "A-3"}, testutil.Numbers(housing))

	since, err := store.ListAppeals(ctx, "a.date >= ?", []any{models.NewDate(2026, time.January, 1)})
	require.NoError(t, err)
	assert.Equal(t, []string{"A-1", "A-2"}, testutil.Numbers(since))
}

func TestDistinctStatuses(t *testing.T) {
	store := testutil.NewStore(t)
	testutil.SeedAppeals(t, store, time.Now())

	statuses, err := store.DistinctStatuses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"закрыто", "открыто"}, statuses)
}

func TestAppealRequiresExistingCategory(t *testing.T) {
	store := testutil.NewStore(t)

	_, err := store.CreateAppeal(context.Background(), models.Appeal{
		Number:     "X-1",
		Date:       models.NewDate(2026, time.May, 1),
		CategoryID: 999,
		Status:     "открыто",
	})
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()
	testutil.SeedAppeals(t, store, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
	_, err := store.CreateCategory(ctx, "Пустая")
	require.NoError(t, err)

	cats, err := store.CategoryStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CategoryStat{{Name: "Дороги", Count: 2}, {Name: "ЖКХ", Count: 2}}, cats)

	years, err := store.YearStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.YearStat{
		{Year: "2023", Count: 1},
		{Year: "2024", Count: 1},
		{Year: "2026", Count: 2},
	}, years)
}

func TestNewsCRUD(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	var ids []int64
	for i, title := range []string{"first", "second", "third", "fourth"} {
		id, err := store.CreateNews(ctx, models.News{Title: title, Content: "body", CreatedAt: base.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	latest, err := store.LatestNews(ctx, 3)
	require.NoError(t, err)
	require.Len(t, latest, 3)
	assert.Equal(t, "fourth", latest[0].Title)
	assert.Equal(t, "second", latest[2].Title)
	assert.True(t, latest[0].CreatedAt.Equal(base.Add(3*time.Hour)))

	require.NoError(t, store.UpdateNews(ctx, ids[0], "renamed", "new body"))
	got, err := store.GetNews(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, "new body", got.Content)

	require.NoError(t, store.DeleteNews(ctx, ids[0]))
	_, err = store.GetNews(ctx, ids[0])
	assert.ErrorIs(t, err, db.ErrNewsNotFound)
	assert.ErrorIs(t, store.DeleteNews(ctx, ids[0]), db.ErrNewsNotFound)
	assert.ErrorIs(t, store.UpdateNews(ctx, 4242, "t", "c"), db.ErrNewsNotFound)

	all, err := store.ListNews(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUsersAndSessions(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	id, err := store.CreateUser(ctx, "clerk", "hash", false)
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, "clerk", "hash", false)
	assert.ErrorIs(t, err, db.ErrUserExists)

	u, err := store.UserByUsername(ctx, "clerk")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.False(t, u.IsAdmin)

	_, err = store.UserByID(ctx, 777)
	assert.ErrorIs(t, err, db.ErrUserNotFound)

	require.NoError(t, store.CreateSession(ctx, "tok", id, time.Hour))
	got, err := store.SessionUser(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	require.NoError(t, store.CreateSession(ctx, "stale", id, -time.Minute))
	_, err = store.SessionUser(ctx, "stale")
	assert.ErrorIs(t, err, db.ErrSessionNotFound)

	require.NoError(t, store.DeleteSession(ctx, "tok"))
	_, err = store.SessionUser(ctx, "tok")
	assert.ErrorIs(t, err, db.ErrSessionNotFound)
}

func TestSeed(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	sd, err := db.DefaultSeed()
	require.NoError(t, err)

	inserted, err := store.Seed(ctx, sd)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = store.Seed(ctx, sd)
	require.NoError(t, err)
	assert.False(t, inserted)

	cats, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, len(sd.Categories))

	appeals, err := store.ListAppeals(ctx, "", nil)
	require.NoError(t, err)
	assert.Len(t, appeals, len(sd.Appeals))

	created, err := store.SeedAdmin(ctx, "admin", "hash")
	require.NoError(t, err)
	assert.True(t, created)
	created, err = store.SeedAdmin(ctx, "other", "hash")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestSeedRollsBackOnFailure(t *testing.T) {
	store := testutil.NewStore(t)
	ctx := context.Background()

	broken, err := db.ParseSeed([]byte(`
categories: [Дороги, ЖКХ]
appeals:
  - {number: "X-1", date: "2026-01-10", category: "Дороги", status: "открыто"}
  - {number: "X-2", date: "2026-02-30", category: "ЖКХ", status: "открыто"}
`))
	require.NoError(t, err)

	_, err = store.Seed(ctx, broken)
	require.Error(t, err)

	cats, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
	appeals, err := store.ListAppeals(ctx, "", nil)
	require.NoError(t, err)
	assert.Empty(t, appeals)

	sd, err := db.DefaultSeed()
	require.NoError(t, err)
	inserted, err := store.Seed(ctx, sd)
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestParseSeedRejectsGarbage(t *testing.T) {
	_, err := db.ParseSeed([]byte("categories: [unterminated"))
	assert.Error(t, err)
}
