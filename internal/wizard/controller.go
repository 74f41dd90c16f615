package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/listsmith/listsmith-backend/internal/listings/domain"
	"github.com/listsmith/listsmith-backend/internal/listings/repository"
)

var (
	// ErrStepBlocked is returned when navigation would skip past an
	// incomplete step.
	ErrStepBlocked = errors.New("step not reachable yet")
	// ErrStepIncomplete is returned by MarkComplete when the project data
	// does not satisfy the step's predicate.
	ErrStepIncomplete = errors.New("step requirements not met")
	// ErrUnknownStep is returned for step ids/indices outside the catalog.
	ErrUnknownStep = errors.New("unknown step")
)

// HTMLGenerator renders a project into a standalone listing document.
type HTMLGenerator func(p *domain.Project) string

// Controller orchestrates step traversal and project mutation. Navigation
// state lives in the StateStore; completion is always derived from the
// project via the registry.
type Controller struct {
	projects *repository.ProjectRepository
	states   *StateStore
	registry *Registry
	generate HTMLGenerator
}

// NewController creates a wizard controller.
func NewController(projects *repository.ProjectRepository, states *StateStore, registry *Registry, generate HTMLGenerator) *Controller {
	return &Controller{
		projects: projects,
		states:   states,
		registry: registry,
		generate: generate,
	}
}

// Session is a snapshot of one project's wizard state.
type Session struct {
	Project        *domain.Project `json:"project"`
	CurrentStep    int             `json:"current_step"`
	CompletedSteps []string        `json:"completed_steps"`
}

// Registry exposes the step catalog for presentation.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// Initialize loads the project when existingID is given, otherwise creates a
// fresh draft for the session. A load/create failure is fatal to the wizard
// session and propagates to the caller.
func (c *Controller) Initialize(ctx context.Context, sessionID, existingID string) (*Session, error) {
	var p *domain.Project
	var err error
	if existingID != "" {
		p, err = c.projects.Get(ctx, existingID)
	} else {
		p, err = c.projects.Create(ctx, sessionID, nil)
	}
	if err != nil {
		return nil, err
	}
	return c.session(ctx, p)
}

// Session returns the current snapshot for a project.
func (c *Controller) Session(ctx context.Context, projectID string) (*Session, error) {
	p, err := c.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return c.session(ctx, p)
}

func (c *Controller) session(ctx context.Context, p *domain.Project) (*Session, error) {
	st, err := c.states.get(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if st.CurrentStep > c.registry.Len() {
		st.CurrentStep = c.registry.Len()
	}
	return &Session{
		Project:        p,
		CurrentStep:    st.CurrentStep,
		CompletedSteps: c.registry.CompletedSteps(p),
	}, nil
}

// UpdateProject delegates to the store and returns the merged record. Errors
// propagate unchanged; nothing is swallowed or retried here.
func (c *Controller) UpdateProject(ctx context.Context, projectID string, patch *domain.ProjectPatch) (*domain.Project, error) {
	return c.projects.Update(ctx, projectID, patch)
}

// Advance moves the pointer forward one step, clamped to the catalog.
func (c *Controller) Advance(ctx context.Context, projectID string) (*Session, error) {
	return c.move(ctx, projectID, +1)
}

// Retreat moves the pointer back one step, clamped to step 1.
func (c *Controller) Retreat(ctx context.Context, projectID string) (*Session, error) {
	return c.move(ctx, projectID, -1)
}

func (c *Controller) move(ctx context.Context, projectID string, delta int) (*Session, error) {
	p, err := c.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	st, err := c.states.get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	st.CurrentStep += delta
	if st.CurrentStep < 1 {
		st.CurrentStep = 1
	}
	if st.CurrentStep > c.registry.Len() {
		st.CurrentStep = c.registry.Len()
	}
	if err := c.states.set(ctx, projectID, st); err != nil {
		return nil, err
	}
	return c.session(ctx, p)
}

// JumpTo moves the pointer straight to the given step. A step is reachable
// when every required step before it is complete, or when it is itself
// already complete: you can revisit, but you cannot skip past unfinished
// required work. On a blocked jump the pointer is left unchanged.
func (c *Controller) JumpTo(ctx context.Context, projectID string, step int) (*Session, error) {
	p, err := c.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if _, ok := c.registry.ByIndex(step); !ok {
		return nil, ErrUnknownStep
	}

	allowed := c.registry.Reachable(p, step) || c.registry.IsComplete(p, step)
	if !allowed {
		return nil, ErrStepBlocked
	}

	st, err := c.states.get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	st.CurrentStep = step
	if err := c.states.set(ctx, projectID, st); err != nil {
		return nil, err
	}
	return c.session(ctx, p)
}

// MarkComplete validates that the project data satisfies the step's
// predicate. Completion itself is derived, so there is nothing to store: a
// step that passes here stays complete exactly as long as the data does.
func (c *Controller) MarkComplete(ctx context.Context, projectID, stepID string) (*Session, error) {
	p, err := c.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	step, ok := c.registry.ByID(stepID)
	if !ok {
		return nil, ErrUnknownStep
	}
	if !step.Complete(p) {
		return nil, fmt.Errorf("%w: %s", ErrStepIncomplete, stepID)
	}
	return c.session(ctx, p)
}

// Finalize runs the template generator for the project and persists the
// result. All required steps must be complete first. Re-running regenerates
// the cached preview.
func (c *Controller) Finalize(ctx context.Context, projectID string) (*domain.Project, error) {
	p, err := c.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	for _, s := range c.registry.Steps() {
		if s.Required && !s.Complete(p) {
			return nil, fmt.Errorf("%w: %s", ErrStepIncomplete, s.ID)
		}
	}

	html := c.generate(p)
	now := time.Now().UTC()
	status := domain.StatusCompleted
	return c.projects.Update(ctx, projectID, &domain.ProjectPatch{
		Status:      &status,
		HTMLPreview: &html,
		GeneratedAt: &now,
	})
}

// Reset clears the navigation state for a project (used on delete).
func (c *Controller) Reset(ctx context.Context, projectID string) error {
	return c.states.delete(ctx, projectID)
}
