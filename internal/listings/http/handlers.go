package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/listsmith/listsmith-backend/internal/api/http/middleware"
	"github.com/listsmith/listsmith-backend/internal/listings/domain"
)

func (h *Handler) create(c *gin.Context) {
	var seed domain.ProjectPatch
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&seed); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
	}

	sessionID := c.GetString(middleware.SessionKey)
	p, err := h.repo.Create(c.Request.Context(), sessionID, &seed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionKey)
	sortKey := c.Query("sort")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid limit"})
			return
		}
		limit = n
	}

	items, err := h.repo.List(c.Request.Context(), sessionID, sortKey, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err == domain.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) update(c *gin.Context) {
	var patch domain.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.repo.Update(c.Request.Context(), c.Param("id"), &patch)
	if err == domain.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	// best effort; navigation state is worthless without the project
	if err := h.wizard.Reset(c.Request.Context(), id); err != nil {
		log.Printf("[listings] failed to clear wizard state for %s: %v", id, err)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
