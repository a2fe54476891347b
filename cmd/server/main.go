package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/volunteerin/partner-gateway/internal/config"
	"github.com/volunteerin/partner-gateway/internal/database"
	"github.com/volunteerin/partner-gateway/internal/draft"
	"github.com/volunteerin/partner-gateway/internal/handler"
	"github.com/volunteerin/partner-gateway/internal/pipeline"
	"github.com/volunteerin/partner-gateway/internal/platform"
	"github.com/volunteerin/partner-gateway/internal/queue"
	"github.com/volunteerin/partner-gateway/internal/repository"
	"github.com/volunteerin/partner-gateway/internal/router"
	"github.com/volunteerin/partner-gateway/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the keyed store, the catalog cache and the rate limiter.
	// Without it the gateway still runs: the store falls back to memory and
	// the middlewares disable themselves.
	rdb := config.NewRedisClient()
	var kv store.KeyedStore
	if rdb != nil {
		kv = store.NewRedisStore(rdb)
	} else {
		log.Println("redis unavailable, using in-memory store (sessions will not survive restarts)")
		kv = store.NewMemoryStore()
	}

	client := platform.New(cfg.UpstreamBaseURL, time.Duration(cfg.UpstreamTimeout)*time.Second)

	draftRepo := repository.NewDraftRepo(db)
	manager := draft.NewManager(draftRepo, time.Duration(cfg.DebounceMS)*time.Millisecond)
	submitter := pipeline.NewSubmitter(client, kv)

	authH := handler.NewAuthHandler(cfg, client, kv)
	catalogH := handler.NewCatalogHandler(client, kv)
	profileH := handler.NewProfileHandler(client, kv)
	eventsH := handler.NewEventsHandler(client, kv)
	draftH := handler.NewDraftHandler(cfg, manager, kv, submitter)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, kv)
	router.RegisterCatalog(e, catalogH, kv, config.LoadCacheConfig(), rdb)
	router.RegisterPartner(e, profileH, eventsH, kv)
	router.RegisterDrafts(e, draftH, kv, config.LoadRateLimitConfig(), rdb)

	// Background consumer writes the submission audit log; it reconnects on
	// its own and never takes the server down.
	go func() {
		if err := queue.StartSubmissionConsumer(); err != nil {
			log.Printf("submission consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
