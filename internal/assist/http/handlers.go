package http

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/listsmith/listsmith-backend/internal/assist/upload"
)

type importReq struct {
	URL string `json:"url"`
}

// importURL scrapes a product page and answers with draft listing fields.
// A failed scrape is a 422 with a user-facing message; nothing is persisted
// here, so the caller's manual fields stay untouched.
func (h *Handler) importURL(c *gin.Context) {
	var req importReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	patch, err := h.importer.ImportFromURL(c.Request.Context(), strings.TrimSpace(req.URL))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "fields": patch})
}

type enhanceReq struct {
	Text string `json:"text"`
}

func (h *Handler) enhance(c *gin.Context) {
	var req enhanceReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	enhanced := h.llm.EnhanceDescription(c.Request.Context(), req.Text)
	c.JSON(http.StatusOK, gin.H{"ok": true, "text": enhanced})
}

type keywordsReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *Handler) keywords(c *gin.Context) {
	var req keywordsReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	kws := h.llm.SuggestKeywords(c.Request.Context(), req.Title, req.Description)
	c.JSON(http.StatusOK, gin.H{"ok": true, "keywords": kws})
}

type listTimeReq struct {
	Title string `json:"title"`
}

func (h *Handler) listTime(c *gin.Context) {
	var req listTimeReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	suggestion := h.llm.SuggestListTime(c.Request.Context(), req.Title)
	c.JSON(http.StatusOK, gin.H{"ok": true, "suggested_list_time": suggestion})
}

// upload stores an image in object storage. When the backend is down the
// caller gets a local ephemeral preview reference instead of an error.
func (h *Handler) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "could not read file"})
		return
	}
	defer src.Close()

	res := upload.LocalPreview(file.Filename)
	if h.uploader != nil {
		uploaded, err := h.uploader.Upload(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), src)
		if err != nil {
			log.Printf("[assist] upload failed, falling back to local preview: %v", err)
		} else {
			res = uploaded
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "file": res})
}
