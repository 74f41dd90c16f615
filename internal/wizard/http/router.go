package http

import (
	"github.com/gin-gonic/gin"

	"github.com/listsmith/listsmith-backend/internal/assist/llm"
	"github.com/listsmith/listsmith-backend/internal/wizard"
)

// Handler serves wizard navigation and generation routes for a project.
type Handler struct {
	controller *wizard.Controller
	llm        *llm.Client
}

// Register mounts the session bootstrap route on the api group and the
// per-project wizard routes under the projects group.
func Register(api, projects *gin.RouterGroup, controller *wizard.Controller, llmClient *llm.Client) {
	h := &Handler{controller: controller, llm: llmClient}

	api.POST("/wizard/session", h.initialize)

	g := projects
	g.GET("/:id/wizard", h.state)
	g.POST("/:id/wizard/advance", h.advance)
	g.POST("/:id/wizard/retreat", h.retreat)
	g.POST("/:id/wizard/jump", h.jump)
	g.POST("/:id/wizard/steps/:step_id/complete", h.markComplete)
	g.POST("/:id/generate", h.generate)
	g.GET("/:id/preview", h.preview)
	g.GET("/:id/list-time", h.listTime)
}
