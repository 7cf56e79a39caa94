package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"carebridge-backend/config"
	"carebridge-backend/models/gemini"
	"carebridge-backend/records"
	"carebridge-backend/routes"
	"carebridge-backend/stores"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	store, err := stores.NewStore(stores.NewStoreConfig(cfg.StoreType, cfg.StoreConnection()).WithTTL(cfg.SessionTTL))
	if err != nil {
		log.Fatalf("store setup failed: %v", err)
	}
	defer store.Close()

	model := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.UpstreamTimeout)

	var recordsClient *records.Client
	if cfg.SupabaseURL != "" {
		recordsClient, err = records.New(records.Config{URL: cfg.SupabaseURL, APIKey: cfg.SupabaseAnonKey})
		if err != nil {
			log.Fatalf("records setup failed: %v", err)
		}
	} else {
		log.Println("SUPABASE_URL not set; records endpoints disabled")
	}

	sweeper := startIdleSweep(store, cfg.SessionTTL)
	if sweeper != nil {
		defer sweeper.Stop()
	}

	router := gin.New()
	router.Use(
		gin.Logger(),
		gin.Recovery(),
		limitBodySize(cfg.MaxBodyBytes),
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)

	routes.Register(router, &routes.Handlers{
		Model:   model,
		Store:   store,
		Records: recordsClient,
		Logger:  log.New(os.Stdout, "[API] ", log.LstdFlags),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	log.Printf("server listening on :%s", cfg.Port)
	waitForShutdown(server)
}

// startIdleSweep schedules a periodic cleanup for stores that track idle
// sessions themselves. Stores with native TTL (Redis) don't implement it.
func startIdleSweep(store stores.ConversationStore, ttl time.Duration) *cron.Cron {
	expirer, ok := store.(stores.IdleExpirer)
	if !ok {
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc("@every 10m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		removed, err := expirer.ExpireIdle(ctx, ttl)
		if err != nil {
			log.Printf("idle session sweep failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("idle session sweep removed %d sessions", removed)
		}
	})
	if err != nil {
		log.Printf("failed to schedule idle sweep: %v", err)
		return nil
	}
	c.Start()
	return c
}

func waitForShutdown(server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
