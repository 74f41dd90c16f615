package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listsmith/listsmith-backend/internal/listings/domain"
)

func setupTestRepo(t *testing.T) (*ProjectRepository, *miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	require.NoError(t, client.Ping(context.Background()).Err())

	return NewProjectRepository(client), mr, client
}

func TestProjectRepository_Create(t *testing.T) {
	repo, mr, client := setupTestRepo(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	t.Run("creates draft with defaults", func(t *testing.T) {
		p, err := repo.Create(ctx, "sess-1", nil)
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "sess-1", p.SessionID)
		assert.Equal(t, domain.StatusDraft, p.Status)
		assert.NotNil(t, p.Images)
		assert.Len(t, p.Images, 0)
		assert.NotNil(t, p.SEOKeywords)
		assert.NotNil(t, p.Highlights)
		assert.False(t, p.CreatedAt.IsZero())
		assert.False(t, p.UpdatedAt.IsZero())
	})

	t.Run("applies seed patch over defaults", func(t *testing.T) {
		title := "Vintage Lamp"
		p, err := repo.Create(ctx, "sess-1", &domain.ProjectPatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Vintage Lamp", p.Title)
		assert.Equal(t, domain.StatusDraft, p.Status)
	})

	t.Run("requires a session id", func(t *testing.T) {
		_, err := repo.Create(ctx, "", nil)
		assert.Error(t, err)
	})
}

func TestProjectRepository_Get(t *testing.T) {
	repo, mr, client := setupTestRepo(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	t.Run("round-trips a stored project", func(t *testing.T) {
		created, err := repo.Create(ctx, "sess-1", nil)
		require.NoError(t, err)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.SessionID, got.SessionID)
	})

	t.Run("returns ErrNotFound for missing id", func(t *testing.T) {
		_, err := repo.Get(ctx, "no-such-id")
		assert.Equal(t, domain.ErrNotFound, err)
	})
}

func TestProjectRepository_Update(t *testing.T) {
	repo, mr, client := setupTestRepo(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	t.Run("merges only non-nil fields", func(t *testing.T) {
		title := "Original"
		p, err := repo.Create(ctx, "sess-1", &domain.ProjectPatch{Title: &title})
		require.NoError(t, err)

		desc := "<p>A fine lamp.</p>"
		updated, err := repo.Update(ctx, p.ID, &domain.ProjectPatch{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "Original", updated.Title)
		assert.Equal(t, desc, updated.Description)
		assert.True(t, !updated.UpdatedAt.Before(p.UpdatedAt))
	})

	t.Run("never creates on a missing id", func(t *testing.T) {
		title := "Ghost"
		_, err := repo.Update(ctx, "no-such-id", &domain.ProjectPatch{Title: &title})
		assert.Equal(t, domain.ErrNotFound, err)

		_, err = repo.Get(ctx, "no-such-id")
		assert.Equal(t, domain.ErrNotFound, err)
	})
}

func TestProjectRepository_Delete(t *testing.T) {
	repo, mr, client := setupTestRepo(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	t.Run("removes record and index entries", func(t *testing.T) {
		p, err := repo.Create(ctx, "sess-1", nil)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, p.ID))

		_, err = repo.Get(ctx, p.ID)
		assert.Equal(t, domain.ErrNotFound, err)

		list, err := repo.List(ctx, "sess-1", "", 0)
		require.NoError(t, err)
		assert.Len(t, list, 0)
	})

	t.Run("deleting an absent id is not an error", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, "no-such-id"))
	})
}

func TestProjectRepository_List(t *testing.T) {
	repo, mr, client := setupTestRepo(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	titles := []string{"Alpha", "Charlie", "Bravo"}
	for _, title := range titles {
		title := title
		_, err := repo.Create(ctx, "sess-1", &domain.ProjectPatch{Title: &title})
		require.NoError(t, err)
		// distinct created_at timestamps for the sort assertions
		time.Sleep(2 * time.Millisecond)
	}
	_, err := repo.Create(ctx, "sess-other", nil)
	require.NoError(t, err)

	t.Run("scopes results to the session", func(t *testing.T) {
		list, err := repo.List(ctx, "sess-1", "", 0)
		require.NoError(t, err)
		assert.Len(t, list, 3)
		for _, p := range list {
			assert.Equal(t, "sess-1", p.SessionID)
		}
	})

	t.Run("defaults to newest first", func(t *testing.T) {
		list, err := repo.List(ctx, "sess-1", "", 0)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Bravo", list[0].Title)
		assert.Equal(t, "Alpha", list[2].Title)
	})

	t.Run("sorts by title ascending", func(t *testing.T) {
		list, err := repo.List(ctx, "sess-1", "title", 0)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Alpha", list[0].Title)
		assert.Equal(t, "Bravo", list[1].Title)
		assert.Equal(t, "Charlie", list[2].Title)
	})

	t.Run("applies the limit after sorting", func(t *testing.T) {
		list, err := repo.List(ctx, "sess-1", "title", 2)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Alpha", list[0].Title)
	})

	t.Run("unknown session yields an empty list", func(t *testing.T) {
		list, err := repo.List(ctx, "sess-unknown", "", 0)
		require.NoError(t, err)
		assert.Len(t, list, 0)
	})
}

func TestProjectRepository_ListAll(t *testing.T) {
	repo, mr, client := setupTestRepo(t)
	defer mr.Close()
	defer client.Close()

	ctx := context.Background()

	a, err := repo.Create(ctx, "sess-1", nil)
	require.NoError(t, err)
	_, err = repo.Create(ctx, "sess-2", nil)
	require.NoError(t, err)

	t.Run("returns projects across sessions", func(t *testing.T) {
		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("skips stale index entries", func(t *testing.T) {
		// drop the record but leave the index sets behind
		mr.Del(projectKeyPrefix + a.ID)

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}
