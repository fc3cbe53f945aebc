package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/surveycraft/surveycraft/internal/api"
	"github.com/surveycraft/surveycraft/internal/config"
	"github.com/surveycraft/surveycraft/internal/db"
	"github.com/surveycraft/surveycraft/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var store api.Store
	if cfg.Database.Path == "" {
		// No database file configured: run entirely in memory.
		store = api.NewMemoryStore()
		log.Printf("using in-memory store")
	} else {
		if dir := filepath.Dir(cfg.Database.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Fatalf("create data dir: %v", err)
			}
		}
		conn, err := db.Open(cfg.Database.Path)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer conn.Close()
		if err := db.RunMigrations(conn); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		store = db.NewSQLiteStore(conn)
		log.Printf("using sqlite store at %s", cfg.Database.Path)
	}

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret)
	router := api.NewRouter(store, auth.SignToken, cfg.Auth.TokenTTL)

	mux := http.NewServeMux()
	router.Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":   true,
			"name": "SurveyCraft API",
		})
	})

	handler := middleware.CORS(middleware.SecureHeaders(auth.WithAuth(mux)))

	log.Printf("SurveyCraft server listening on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
