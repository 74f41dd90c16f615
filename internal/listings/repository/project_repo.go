package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/listsmith/listsmith-backend/internal/listings/domain"
)

const (
	projectKeyPrefix  = "listing:project:" // Project record: listing:project:{id}
	sessionSetPrefix  = "listing:session:" // Set of project IDs per session: listing:session:{session_id}:projects
	allProjectsSetKey = "listing:projects" // Global set of all project IDs (reconciliation job input)
)

// ProjectRepository handles Redis operations for listing projects.
// Records carry no TTL: projects are only removed by explicit delete.
type ProjectRepository struct {
	client *redis.Client
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(client *redis.Client) *ProjectRepository {
	return &ProjectRepository{client: client}
}

// Create stores a new project for the session, applying the optional seed
// patch over draft defaults. The id is assigned here, exactly once.
func (r *ProjectRepository) Create(ctx context.Context, sessionID string, seed *domain.ProjectPatch) (*domain.Project, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id required")
	}

	now := time.Now().UTC()
	p := &domain.Project{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		Images:      []domain.Image{},
		SEOKeywords: []string{},
		Highlights:  []string{},
		Status:      domain.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if seed != nil {
		seed.Apply(p)
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.projectKey(p.ID), data, 0)
	pipe.SAdd(ctx, r.sessionSetKey(sessionID), p.ID)
	pipe.SAdd(ctx, allProjectsSetKey, p.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return p, nil
}

// Get retrieves a project by id.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	data, err := r.client.Get(ctx, r.projectKey(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	var p domain.Project
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project: %w", err)
	}
	return &p, nil
}

// Update shallow-merges the patch onto the stored record and persists it.
// Missing ids report ErrNotFound and never create a record. The last
// concurrent Update to complete wins; there is no version check.
func (r *ProjectRepository) Update(ctx context.Context, id string, patch *domain.ProjectPatch) (*domain.Project, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(p)
	p.UpdatedAt = time.Now().UTC()
	// a regenerated preview is stamped with the same instant as the edit,
	// so it never reads as stale against its own write
	if patch.GeneratedAt != nil {
		p.GeneratedAt = &p.UpdatedAt
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := r.client.Set(ctx, r.projectKey(id), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return p, nil
}

// Delete removes a project and its index entries. Deleting an absent id is
// not an error.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	p, err := r.Get(ctx, id)
	if err == domain.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.projectKey(id))
	pipe.SRem(ctx, r.sessionSetKey(p.SessionID), id)
	pipe.SRem(ctx, allProjectsSetKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// List returns the session's projects, sorted by sortKey ("-" prefix for
// descending, default "-created_at") and truncated to limit when > 0.
func (r *ProjectRepository) List(ctx context.Context, sessionID, sortKey string, limit int) ([]domain.Project, error) {
	ids, err := r.client.SMembers(ctx, r.sessionSetKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	out, err := r.fetch(ctx, ids)
	if err != nil {
		return nil, err
	}

	sortProjects(out, sortKey)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListAll returns every stored project regardless of session.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	ids, err := r.client.SMembers(ctx, allProjectsSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return r.fetch(ctx, ids)
}

func (r *ProjectRepository) fetch(ctx context.Context, ids []string) ([]domain.Project, error) {
	out := make([]domain.Project, 0, len(ids))
	for _, id := range ids {
		p, err := r.Get(ctx, id)
		if err == domain.ErrNotFound {
			// stale index entry
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func sortProjects(ps []domain.Project, sortKey string) {
	if sortKey == "" {
		sortKey = "-created_at"
	}
	desc := strings.HasPrefix(sortKey, "-")
	field := strings.TrimPrefix(sortKey, "-")

	less := func(a, b *domain.Project) bool {
		switch field {
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		case "title":
			return a.Title < b.Title
		case "status":
			return a.Status < b.Status
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(ps, func(i, j int) bool {
		if desc {
			return less(&ps[j], &ps[i])
		}
		return less(&ps[i], &ps[j])
	})
}

func (r *ProjectRepository) projectKey(id string) string {
	return projectKeyPrefix + id
}

func (r *ProjectRepository) sessionSetKey(sessionID string) string {
	return fmt.Sprintf("%s%s:projects", sessionSetPrefix, sessionID)
}
