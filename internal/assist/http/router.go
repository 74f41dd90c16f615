package http

import (
	"github.com/gin-gonic/gin"

	"github.com/listsmith/listsmith-backend/internal/assist"
	"github.com/listsmith/listsmith-backend/internal/assist/llm"
	"github.com/listsmith/listsmith-backend/internal/assist/upload"
)

// Handler serves the assist endpoints backed by the external AI, scrape and
// upload collaborators.
type Handler struct {
	importer *assist.Importer
	llm      *llm.Client
	uploader upload.Uploader
}

// Register mounts assist routes on the group.
func Register(g *gin.RouterGroup, importer *assist.Importer, llmClient *llm.Client, uploader upload.Uploader) {
	h := &Handler{importer: importer, llm: llmClient, uploader: uploader}

	g.POST("/import", h.importURL)
	g.POST("/enhance", h.enhance)
	g.POST("/keywords", h.keywords)
	g.POST("/list-time", h.listTime)
	g.POST("/upload", h.upload)
}
