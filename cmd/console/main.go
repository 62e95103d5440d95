package main

import (
	"context"
	"fmt"
	"log"

	"hirestack/recruit-core/internal/api"
	"hirestack/recruit-core/internal/config"
	"hirestack/recruit-core/internal/persist"
	"hirestack/recruit-core/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize persistence backend
	storage, err := newStorage(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize persistence: %v", err)
	}
	log.Printf("✅ Persistence initialized (%s backend)", cfg.Persist.Backend)

	// Initialize store and API client. The client reads the bearer token
	// straight from the session slice, so a sign-in immediately
	// authenticates every later request.
	var st *store.Store
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, func() string {
		return st.Session.Token()
	})

	var hydrator *persist.Hydrator
	st = store.New(client, client, client, client, store.WithOnChange(func(slice string, snapshot any) {
		hydrator.OnChange(slice, snapshot)
	}))
	hydrator = persist.NewHydrator(st, storage)

	// Rehydrate durable state before exposing the store
	ctx := context.Background()
	if err := hydrator.Restore(ctx); err != nil {
		log.Fatalf("❌ Failed to rehydrate state: %v", err)
	}
	log.Println("✅ State rehydrated")

	printSummary(st)
	log.Printf("🚀 Recruit core ready (API: %s)", cfg.API.BaseURL)
}

func newStorage(cfg *config.Config) (persist.Storage, error) {
	switch cfg.Persist.Backend {
	case "redis":
		return persist.NewRedisStorage(cfg.Redis.URL, cfg.Persist.Namespace)
	case "file":
		return persist.NewFileStorage(cfg.Persist.StateDir, cfg.Persist.Namespace)
	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.Persist.Backend)
	}
}

func printSummary(st *store.Store) {
	session := st.Session.State()
	if session.IsAuthenticated() && session.User != nil {
		log.Printf("👤 Signed in as %s", session.User.Email)
	} else {
		log.Println("👤 Not signed in")
	}

	jobs := st.Requisitions.State()
	posts := st.JobPosts.State()
	uploads := st.Uploads.State()
	log.Printf("📋 %d requisitions, %d job posts, %d resumes on file",
		len(jobs.Requisitions), len(posts.JobPosts), len(uploads.Resumes))
}
