package main

import (
	"fmt"
	"log"
	"net/http"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("Error loading configuration:", err)
	}

	db := initDB(cfg.DatabaseURL)
	defer db.Close()

	mux := http.NewServeMux()

	// Profile upsert + per-user read endpoints
	mux.Handle("/profiles", profilesHandler(db))
	mux.Handle("/profiles/", profilesDispatcher(db)) // GET /profiles/{id}[/recommendations|matches|admirers|manner]

	// Like/pass decisions and post-match ratings
	mux.Handle("/decisions", decisionsHandler(db))
	mux.Handle("/ratings", ratingsHandler(db))

	// Health check endpoint for Docker
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Default().Println("Starting souly backend on", addr)
	if err := http.ListenAndServe(addr, withRequestLog(withCORS(mux, cfg.CORSOrigins))); err != nil {
		log.Fatal("Server error:", err)
	}
}
