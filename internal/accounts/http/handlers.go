package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/listsmith/listsmith-backend/internal/accounts/domain"
	"github.com/listsmith/listsmith-backend/internal/accounts/repository"
	"github.com/listsmith/listsmith-backend/internal/api/http/middleware"
)

// Handler serves the mocked account/subscription routes.
type Handler struct {
	repo *repository.AccountRepository
}

// Register mounts account routes on the group.
func Register(g *gin.RouterGroup, repo *repository.AccountRepository) {
	h := &Handler{repo: repo}

	g.GET("", h.get)
	g.PATCH("", h.update)
	g.POST("/plan", h.setPlan)
}

func (h *Handler) get(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionKey)
	a, err := h.repo.GetOrCreate(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "account": a})
}

func (h *Handler) update(c *gin.Context) {
	var patch domain.AccountPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	sessionID := c.GetString(middleware.SessionKey)
	a, err := h.repo.UpdateProfile(c.Request.Context(), sessionID, &patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "account": a})
}

type planReq struct {
	Plan string `json:"plan"`
}

func (h *Handler) setPlan(c *gin.Context) {
	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Plan) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	sessionID := c.GetString(middleware.SessionKey)
	a, err := h.repo.SetPlan(c.Request.Context(), sessionID, strings.ToUpper(strings.TrimSpace(req.Plan)))
	if err == domain.ErrInvalidPlan {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid plan"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "account": a})
}
