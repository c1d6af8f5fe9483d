package news

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appeal-archive/internal/db"
	"appeal-archive/internal/testutil"
)

func TestCreateRejectsEmptyFields(t *testing.T) {
	store := testutil.NewStore(t)
	svc := NewService(store)
	ctx := context.Background()

	for _, tc := range []struct{ title, content string }{
		{"", "body"},
		{"title", ""},
		{"   ", "body"},
		{"title", "\n\t"},
		{"title", "<script>alert(1)</script>"},
	} {
		_, err := svc.Create(ctx, tc.title, tc.content)
		assert.ErrorIs(t, err, ErrEmptyFields, "title=%q content=%q", tc.title, tc.content)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateStoresTrimmedText(t *testing.T) {
	store := testutil.NewStore(t)
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }

	n, err := svc.Create(context.Background(), "  Tom & Jerry ", "a < b\n")
	require.NoError(t, err)
	assert.Equal(t, "Tom & Jerry", n.Title)
	assert.Equal(t, "a < b", n.Content)
	assert.NotZero(t, n.ID)

	stored, err := svc.Get(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tom & Jerry", stored.Title)
	assert.Equal(t, "a < b", stored.Content)
	assert.True(t, stored.CreatedAt.Equal(n.CreatedAt))
}

func TestSanitize(t *testing.T) {
	for _, tc := range []struct{ in, want string }{
		{`<p onclick="x()">Текст</p><script>bad()</script>`, "<p>Текст</p>"},
		{"a < b", "a &lt; b"},
		{"Tom & Jerry", "Tom &amp; Jerry"},
		{"<b>bold</b>", "<b>bold</b>"},
	} {
		assert.Equal(t, tc.want, Sanitize(tc.in), tc.in)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	store := testutil.NewStore(t)
	svc := NewService(store)
	ctx := context.Background()

	n, err := svc.Create(ctx, "title", "content")
	require.NoError(t, err)

	_, err = svc.Update(ctx, n.ID, "title", "")
	assert.ErrorIs(t, err, ErrEmptyFields)

	updated, err := svc.Update(ctx, n.ID, "new title", "new content")
	require.NoError(t, err)
	assert.Equal(t, "new title", updated.Title)

	_, err = svc.Update(ctx, n.ID+100, "t", "c")
	assert.ErrorIs(t, err, db.ErrNewsNotFound)

	require.NoError(t, svc.Delete(ctx, n.ID))
	assert.ErrorIs(t, svc.Delete(ctx, n.ID), db.ErrNewsNotFound)
}

func TestLatest(t *testing.T) {
	store := testutil.NewStore(t)
	svc := NewService(store)
	ctx := context.Background()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"a", "b", "c", "d", "e"} {
		at := start.Add(time.Duration(i) * 24 * time.Hour)
		svc.now = func() time.Time { return at }
		_, err := svc.Create(ctx, title, "body")
		require.NoError(t, err)
	}

	latest, err := svc.Latest(ctx, 3)
	require.NoError(t, err)
	require.Len(t, latest, 3)
	assert.Equal(t, []string{"e", "d", "c"}, []string{latest[0].Title, latest[1].Title, latest[2].Title})
}
