package wizard

import (
	"strings"

	"github.com/listsmith/listsmith-backend/internal/listings/domain"
)

// Step is one screen of the listing wizard. Index is 1-based. Complete is a
// pure predicate over the project; the registry itself performs no I/O.
type Step struct {
	ID          string
	Index       int
	DisplayName string
	// Component names the front-end form bound to this step.
	Component string
	Complete  func(p *domain.Project) bool
	// Required steps gate final HTML generation.
	Required bool
}

// Registry is the fixed, ordered catalog of wizard steps.
type Registry struct {
	steps []Step
}

// Step ids.
const (
	StepDetails  = "details"
	StepImages   = "images"
	StepBranding = "branding"
	StepSEO      = "seo"
	StepPreview  = "preview"
)

// DefaultRegistry returns the listing wizard's step catalog.
func DefaultRegistry() *Registry {
	return &Registry{steps: []Step{
		{
			ID:          StepDetails,
			Index:       1,
			DisplayName: "Product Details",
			Component:   "DetailsForm",
			Required:    true,
			Complete: func(p *domain.Project) bool {
				return strings.TrimSpace(p.Title) != ""
			},
		},
		{
			ID:          StepImages,
			Index:       2,
			DisplayName: "Images",
			Component:   "ImageUploader",
			Required:    true,
			Complete: func(p *domain.Project) bool {
				return len(p.Images) > 0
			},
		},
		{
			ID:          StepBranding,
			Index:       3,
			DisplayName: "Store & Shipping",
			Component:   "BrandingForm",
			// All branding fields are optional.
			Complete: func(p *domain.Project) bool { return true },
		},
		{
			ID:          StepSEO,
			Index:       4,
			DisplayName: "SEO & Highlights",
			Component:   "SEOForm",
			Complete:    func(p *domain.Project) bool { return true },
		},
		{
			ID:          StepPreview,
			Index:       5,
			DisplayName: "Preview & Export",
			Component:   "PreviewPane",
			Complete: func(p *domain.Project) bool {
				return p.Status == domain.StatusCompleted && p.HTMLPreview != ""
			},
		},
	}}
}

// Steps returns the ordered catalog.
func (r *Registry) Steps() []Step {
	return r.steps
}

// Len returns the number of steps; the terminal step has this index.
func (r *Registry) Len() int {
	return len(r.steps)
}

// ByID looks a step up by id.
func (r *Registry) ByID(id string) (Step, bool) {
	for _, s := range r.steps {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}

// ByIndex looks a step up by its 1-based index.
func (r *Registry) ByIndex(idx int) (Step, bool) {
	if idx < 1 || idx > len(r.steps) {
		return Step{}, false
	}
	return r.steps[idx-1], true
}

// CompletedSteps derives the set of complete step ids from the current
// project data. Completion is never cached: clearing a field un-completes
// the step that required it.
func (r *Registry) CompletedSteps(p *domain.Project) []string {
	out := make([]string, 0, len(r.steps))
	for _, s := range r.steps {
		if s.Complete(p) {
			out = append(out, s.ID)
		}
	}
	return out
}

// IsComplete evaluates one step's predicate by index.
func (r *Registry) IsComplete(p *domain.Project, idx int) bool {
	s, ok := r.ByIndex(idx)
	if !ok {
		return false
	}
	return s.Complete(p)
}

// Reachable reports whether every required step before idx is complete.
// Optional steps never block navigation past them.
func (r *Registry) Reachable(p *domain.Project, idx int) bool {
	for _, s := range r.steps {
		if s.Index >= idx {
			break
		}
		if s.Required && !s.Complete(p) {
			return false
		}
	}
	return true
}
