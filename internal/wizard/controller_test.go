package wizard

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listsmith/listsmith-backend/internal/listings/domain"
	"github.com/listsmith/listsmith-backend/internal/listings/repository"
)

func setupController(t *testing.T) (*Controller, *repository.ProjectRepository, func()) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	require.NoError(t, client.Ping(context.Background()).Err())

	repo := repository.NewProjectRepository(client)
	generate := func(p *domain.Project) string {
		return "<html><title>" + p.Title + "</title></html>"
	}
	c := NewController(repo, NewStateStore(client), DefaultRegistry(), generate)

	cleanup := func() {
		client.Close()
		mr.Close()
	}
	return c, repo, cleanup
}

func completableProject(t *testing.T, repo *repository.ProjectRepository) *domain.Project {
	t.Helper()
	title := "Vintage Lamp"
	images := []domain.Image{{URL: "https://img/lamp.jpg", Name: "lamp.jpg"}}
	p, err := repo.Create(context.Background(), "sess-1", &domain.ProjectPatch{
		Title:  &title,
		Images: &images,
	})
	require.NoError(t, err)
	return p
}

func TestController_Initialize(t *testing.T) {
	c, repo, cleanup := setupController(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("creates a fresh draft at step 1", func(t *testing.T) {
		sess, err := c.Initialize(ctx, "sess-1", "")
		require.NoError(t, err)
		assert.Equal(t, 1, sess.CurrentStep)
		assert.Equal(t, domain.StatusDraft, sess.Project.Status)
		assert.NotEmpty(t, sess.Project.ID)
	})

	t.Run("resumes an existing project", func(t *testing.T) {
		p := completableProject(t, repo)

		sess, err := c.Initialize(ctx, "sess-1", p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, sess.Project.ID)
		assert.Equal(t, "Vintage Lamp", sess.Project.Title)
	})

	t.Run("propagates a missing project", func(t *testing.T) {
		_, err := c.Initialize(ctx, "sess-1", "no-such-id")
		assert.Equal(t, domain.ErrNotFound, err)
	})
}

func TestController_AdvanceRetreat(t *testing.T) {
	c, repo, cleanup := setupController(t)
	defer cleanup()

	ctx := context.Background()
	p := completableProject(t, repo)

	t.Run("advance moves forward one step", func(t *testing.T) {
		sess, err := c.Advance(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, sess.CurrentStep)
	})

	t.Run("advance clamps at the last step", func(t *testing.T) {
		var sess *Session
		var err error
		for i := 0; i < 10; i++ {
			sess, err = c.Advance(ctx, p.ID)
			require.NoError(t, err)
		}
		assert.Equal(t, 5, sess.CurrentStep)
	})

	t.Run("retreat clamps at step 1", func(t *testing.T) {
		var sess *Session
		var err error
		for i := 0; i < 10; i++ {
			sess, err = c.Retreat(ctx, p.ID)
			require.NoError(t, err)
		}
		assert.Equal(t, 1, sess.CurrentStep)
	})
}

func TestController_JumpTo(t *testing.T) {
	c, repo, cleanup := setupController(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("step 1 is always reachable", func(t *testing.T) {
		p := completableProject(t, repo)
		sess, err := c.JumpTo(ctx, p.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, sess.CurrentStep)
	})

	t.Run("a complete step is reachable", func(t *testing.T) {
		p := completableProject(t, repo)
		sess, err := c.JumpTo(ctx, p.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, sess.CurrentStep)
	})

	t.Run("the step after a complete one is reachable", func(t *testing.T) {
		p := completableProject(t, repo)
		// images (2) is complete, so branding (3) opens up
		sess, err := c.JumpTo(ctx, p.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, sess.CurrentStep)
	})

	t.Run("skipping ahead is blocked and leaves the pointer", func(t *testing.T) {
		// empty draft: details is incomplete, so images is out of reach
		p, err := repo.Create(ctx, "sess-1", nil)
		require.NoError(t, err)

		_, err = c.JumpTo(ctx, p.ID, 2)
		assert.ErrorIs(t, err, ErrStepBlocked)

		sess, err := c.Session(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, sess.CurrentStep)
	})

	t.Run("every step past unfinished required work is blocked", func(t *testing.T) {
		p, err := repo.Create(ctx, "sess-1", nil)
		require.NoError(t, err)

		for step := 2; step <= 5; step++ {
			_, err = c.JumpTo(ctx, p.ID, step)
			assert.ErrorIs(t, err, ErrStepBlocked, "step %d", step)
		}
	})

	t.Run("an optional step never blocks the steps behind it", func(t *testing.T) {
		// details and images done, branding and seo untouched
		p := completableProject(t, repo)

		sess, err := c.JumpTo(ctx, p.ID, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, sess.CurrentStep)
	})

	t.Run("a title alone opens images but not branding", func(t *testing.T) {
		title := "Vintage Lamp"
		p, err := repo.Create(ctx, "sess-1", &domain.ProjectPatch{Title: &title})
		require.NoError(t, err)

		sess, err := c.JumpTo(ctx, p.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, sess.CurrentStep)

		_, err = c.JumpTo(ctx, p.ID, 3)
		assert.ErrorIs(t, err, ErrStepBlocked)
	})

	t.Run("unknown indices are rejected", func(t *testing.T) {
		p := completableProject(t, repo)
		_, err := c.JumpTo(ctx, p.ID, 0)
		assert.ErrorIs(t, err, ErrUnknownStep)
		_, err = c.JumpTo(ctx, p.ID, 9)
		assert.ErrorIs(t, err, ErrUnknownStep)
	})
}

func TestController_MarkComplete(t *testing.T) {
	c, repo, cleanup := setupController(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("passes when the data satisfies the step", func(t *testing.T) {
		p := completableProject(t, repo)
		sess, err := c.MarkComplete(ctx, p.ID, StepDetails)
		require.NoError(t, err)
		assert.Contains(t, sess.CompletedSteps, StepDetails)
	})

	t.Run("rejects when the data does not", func(t *testing.T) {
		p, err := repo.Create(ctx, "sess-1", nil)
		require.NoError(t, err)

		_, err = c.MarkComplete(ctx, p.ID, StepDetails)
		assert.ErrorIs(t, err, ErrStepIncomplete)
	})

	t.Run("rejects unknown step ids", func(t *testing.T) {
		p := completableProject(t, repo)
		_, err := c.MarkComplete(ctx, p.ID, "publish")
		assert.ErrorIs(t, err, ErrUnknownStep)
	})
}

func TestController_Finalize(t *testing.T) {
	c, repo, cleanup := setupController(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("generates and persists the preview", func(t *testing.T) {
		p := completableProject(t, repo)

		done, err := c.Finalize(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, done.Status)
		assert.Contains(t, done.HTMLPreview, "<title>Vintage Lamp</title>")
		require.NotNil(t, done.GeneratedAt)

		// the preview step is now derived complete
		sess, err := c.Session(ctx, p.ID)
		require.NoError(t, err)
		assert.Contains(t, sess.CompletedSteps, StepPreview)
	})

	t.Run("refuses while a required step is incomplete", func(t *testing.T) {
		title := "No Images Yet"
		p, err := repo.Create(ctx, "sess-1", &domain.ProjectPatch{Title: &title})
		require.NoError(t, err)

		_, err = c.Finalize(ctx, p.ID)
		assert.ErrorIs(t, err, ErrStepIncomplete)

		got, err := repo.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDraft, got.Status)
		assert.Empty(t, got.HTMLPreview)
	})

	t.Run("re-running regenerates the cached preview", func(t *testing.T) {
		p := completableProject(t, repo)

		_, err := c.Finalize(ctx, p.ID)
		require.NoError(t, err)

		title := "Brass Lamp"
		_, err = c.UpdateProject(ctx, p.ID, &domain.ProjectPatch{Title: &title})
		require.NoError(t, err)

		done, err := c.Finalize(ctx, p.ID)
		require.NoError(t, err)
		assert.Contains(t, done.HTMLPreview, "<title>Brass Lamp</title>")
	})
}

func TestController_Reset(t *testing.T) {
	c, repo, cleanup := setupController(t)
	defer cleanup()

	ctx := context.Background()
	p := completableProject(t, repo)

	_, err := c.Advance(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, c.Reset(ctx, p.ID))

	sess, err := c.Session(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.CurrentStep)
}
