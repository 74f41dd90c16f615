package http

import (
	"github.com/gin-gonic/gin"

	"github.com/listsmith/listsmith-backend/internal/listings/repository"
	"github.com/listsmith/listsmith-backend/internal/wizard"
)

// Handler serves project CRUD routes.
type Handler struct {
	repo   *repository.ProjectRepository
	wizard *wizard.Controller
}

// Register mounts project routes on the group.
func Register(g *gin.RouterGroup, repo *repository.ProjectRepository, controller *wizard.Controller) {
	h := &Handler{repo: repo, wizard: controller}

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
}
