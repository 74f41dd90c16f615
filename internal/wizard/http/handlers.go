package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/listsmith/listsmith-backend/internal/api/http/middleware"
	"github.com/listsmith/listsmith-backend/internal/listings/domain"
	"github.com/listsmith/listsmith-backend/internal/wizard"
)

type stepView struct {
	ID          string `json:"id"`
	Index       int    `json:"index"`
	DisplayName string `json:"display_name"`
	Component   string `json:"component"`
	Required    bool   `json:"required"`
	Complete    bool   `json:"complete"`
}

func (h *Handler) sessionView(s *wizard.Session) gin.H {
	done := make(map[string]bool, len(s.CompletedSteps))
	for _, id := range s.CompletedSteps {
		done[id] = true
	}

	steps := make([]stepView, 0, h.controller.Registry().Len())
	for _, st := range h.controller.Registry().Steps() {
		steps = append(steps, stepView{
			ID:          st.ID,
			Index:       st.Index,
			DisplayName: st.DisplayName,
			Component:   st.Component,
			Required:    st.Required,
			Complete:    done[st.ID],
		})
	}

	return gin.H{
		"ok":              true,
		"project":         s.Project,
		"current_step":    s.CurrentStep,
		"completed_steps": s.CompletedSteps,
		"steps":           steps,
	}
}

type initializeReq struct {
	ProjectID string `json:"project_id"`
}

func (h *Handler) initialize(c *gin.Context) {
	var req initializeReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
	}

	sessionID := c.GetString(middleware.SessionKey)
	s, err := h.controller.Initialize(c.Request.Context(), sessionID, req.ProjectID)
	if err == domain.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.sessionView(s))
}

func (h *Handler) state(c *gin.Context) {
	s, err := h.controller.Session(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessionView(s))
}

func (h *Handler) advance(c *gin.Context) {
	s, err := h.controller.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessionView(s))
}

func (h *Handler) retreat(c *gin.Context) {
	s, err := h.controller.Retreat(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessionView(s))
}

type jumpReq struct {
	Step int `json:"step"`
}

func (h *Handler) jump(c *gin.Context) {
	var req jumpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	s, err := h.controller.JumpTo(c.Request.Context(), c.Param("id"), req.Step)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessionView(s))
}

func (h *Handler) markComplete(c *gin.Context) {
	s, err := h.controller.MarkComplete(c.Request.Context(), c.Param("id"), c.Param("step_id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.sessionView(s))
}

func (h *Handler) generate(c *gin.Context) {
	p, err := h.controller.Finalize(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p, "html": p.HTMLPreview})
}

func (h *Handler) preview(c *gin.Context) {
	s, err := h.controller.Session(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	if s.Project.HTMLPreview == "" {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "no preview generated yet"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(s.Project.HTMLPreview))
}

// listTime returns the cached listing-time recommendation, computing and
// persisting it on first request.
func (h *Handler) listTime(c *gin.Context) {
	ctx := c.Request.Context()
	s, err := h.controller.Session(ctx, c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	if s.Project.SuggestedListTime != "" {
		c.JSON(http.StatusOK, gin.H{"ok": true, "suggested_list_time": s.Project.SuggestedListTime, "cached": true})
		return
	}

	suggestion := h.llm.SuggestListTime(ctx, s.Project.Title)
	p, err := h.controller.UpdateProject(ctx, s.Project.ID, &domain.ProjectPatch{
		SuggestedListTime: &suggestion,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "suggested_list_time": p.SuggestedListTime, "cached": false})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, wizard.ErrUnknownStep):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, wizard.ErrStepBlocked), errors.Is(err, wizard.ErrStepIncomplete):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
