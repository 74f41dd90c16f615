package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/listsmith/listsmith-backend/internal/listings/domain"
	"github.com/listsmith/listsmith-backend/internal/listings/repository"
)

// HTMLGenerator renders a project into its export document.
type HTMLGenerator func(p *domain.Project) string

// Scheduler periodically regenerates stale previews: completed projects
// edited after their last generation keep a stale html_preview until this
// pass (or an explicit generate call) refreshes it.
type Scheduler struct {
	projects *repository.ProjectRepository
	generate HTMLGenerator
}

func NewScheduler(projects *repository.ProjectRepository, generate HTMLGenerator) *Scheduler {
	return &Scheduler{projects: projects, generate: generate}
}

// Start initializes cron tasks
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	// hourly, on the hour
	_, err := c.AddFunc("0 0 * * * *", func() {
		s.ReconcilePreviews(context.Background())
	})

	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (preview reconciliation, hourly)")
	c.Start()
}

// ReconcilePreviews re-renders every completed project whose fields changed
// after the cached preview was generated.
func (s *Scheduler) ReconcilePreviews(ctx context.Context) {
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		log.Printf("Preview reconciliation failed to list projects: %v", err)
		return
	}

	refreshed := 0
	for i := range projects {
		p := &projects[i]
		if !p.PreviewStale() {
			continue
		}

		html := s.generate(p)
		now := time.Now().UTC()
		if _, err := s.projects.Update(ctx, p.ID, &domain.ProjectPatch{
			HTMLPreview: &html,
			GeneratedAt: &now,
		}); err != nil {
			log.Printf("Preview reconciliation failed for project %s: %v", p.ID, err)
			continue
		}
		refreshed++
	}

	if refreshed > 0 {
		log.Printf("Preview reconciliation refreshed %d project(s)", refreshed)
	}
}
