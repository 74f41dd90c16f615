package main

import (
	"context"
	"log"

	"github.com/listsmith/listsmith-backend/config"
	accountsrepo "github.com/listsmith/listsmith-backend/internal/accounts/repository"
	"github.com/listsmith/listsmith-backend/internal/assist"
	"github.com/listsmith/listsmith-backend/internal/assist/llm"
	"github.com/listsmith/listsmith-backend/internal/assist/scrape"
	"github.com/listsmith/listsmith-backend/internal/assist/upload"
	"github.com/listsmith/listsmith-backend/internal/bootstrap"
	cronjob "github.com/listsmith/listsmith-backend/internal/listings/cron"
	listingsrepo "github.com/listsmith/listsmith-backend/internal/listings/repository"
	"github.com/listsmith/listsmith-backend/internal/templategen"
	"github.com/listsmith/listsmith-backend/internal/wizard"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	rdb, err := bootstrap.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	projects := listingsrepo.NewProjectRepository(rdb)
	accounts := accountsrepo.NewAccountRepository(rdb)

	registry := wizard.DefaultRegistry()
	states := wizard.NewStateStore(rdb)
	controller := wizard.NewController(projects, states, registry, templategen.Generate)

	llmClient := llm.NewClient(cfg.Assist.LLMBaseURL, cfg.Assist.RequestsPerSecond)
	scraper := scrape.NewClient(cfg.Assist.ScrapeBaseURL)
	importer := assist.NewImporter(scraper, llmClient)

	var uploader upload.Uploader
	if cfg.S3.Bucket != "" && cfg.S3.AccessKey != "" {
		s3Uploader, err := upload.NewS3Uploader(context.Background(), upload.Config{
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PublicURL: cfg.S3.PublicURL,
		})
		if err != nil {
			log.Fatalf("Failed to configure S3 uploader: %v", err)
		}
		uploader = s3Uploader
	} else {
		log.Println("S3 not configured, uploads will use local previews")
	}

	scheduler := cronjob.NewScheduler(projects, templategen.Generate)
	scheduler.Start()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config:   cfg,
		Redis:    rdb,
		Projects: projects,
		Accounts: accounts,
		Wizard:   controller,
		Importer: importer,
		LLM:      llmClient,
		Uploader: uploader,
	})

	log.Printf("Starting listsmith-backend on port %s (env=%s)", cfg.Server.Port, cfg.App.Environment)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
