package bootstrap

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/listsmith/listsmith-backend/config"
	accountshttp "github.com/listsmith/listsmith-backend/internal/accounts/http"
	accountsrepo "github.com/listsmith/listsmith-backend/internal/accounts/repository"
	apihttp "github.com/listsmith/listsmith-backend/internal/api/http"
	"github.com/listsmith/listsmith-backend/internal/api/http/middleware"
	"github.com/listsmith/listsmith-backend/internal/assist"
	assisthttp "github.com/listsmith/listsmith-backend/internal/assist/http"
	"github.com/listsmith/listsmith-backend/internal/assist/llm"
	"github.com/listsmith/listsmith-backend/internal/assist/upload"
	listingshttp "github.com/listsmith/listsmith-backend/internal/listings/http"
	listingsrepo "github.com/listsmith/listsmith-backend/internal/listings/repository"
	"github.com/listsmith/listsmith-backend/internal/wizard"
	wizardhttp "github.com/listsmith/listsmith-backend/internal/wizard/http"
)

// RouterDeps carries everything the HTTP layer needs.
type RouterDeps struct {
	Config   *config.Config
	Redis    *redis.Client
	Projects *listingsrepo.ProjectRepository
	Accounts *accountsrepo.AccountRepository
	Wizard   *wizard.Controller
	Importer *assist.Importer
	LLM      *llm.Client
	Uploader upload.Uploader
}

// BuildRouter assembles the gin engine with CORS, the session middleware
// and all feature routes.
func BuildRouter(deps RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     splitOrigins(deps.Config.Server.CORSOrigins),
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Session-Id"},
		ExposeHeaders:    []string{"X-Session-Id"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	health := apihttp.NewHealthHandler("listsmith-backend", deps.Config.App.Version, deps.Redis)
	health.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.SessionMiddleware())

	projects := api.Group("/projects")
	listingshttp.Register(projects, deps.Projects, deps.Wizard)
	wizardhttp.Register(api, projects, deps.Wizard, deps.LLM)
	assisthttp.Register(api.Group("/assist"), deps.Importer, deps.LLM, deps.Uploader)
	accountshttp.Register(api.Group("/account"), deps.Accounts)

	return r
}

func splitOrigins(raw string) []string {
	if raw == "" || raw == "*" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
