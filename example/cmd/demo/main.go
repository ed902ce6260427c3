package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	fetch "github.com/meridian-labs/fetch-go/fetch"
)

const (
	apiAddr     = ":8080"
	metricsAddr = ":2112"
)

type user struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// newAPIServer builds a small chi-backed API the demo client talks to.
func newAPIServer() *http.Server {
	users := map[int]user{
		1: {ID: 1, Name: "Ada Lovelace", Email: "ada@example.com"},
		2: {ID: 2, Name: "Grace Hopper", Email: "grace@example.com"},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
		var id int
		fmt.Sscanf(chi.URLParam(req, "id"), "%d", &id)
		u, ok := users[id]
		if !ok {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(u)
	})

	r.Post("/users", func(w http.ResponseWriter, req *http.Request) {
		var u user
		if err := json.NewDecoder(req.Body).Decode(&u); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		u.ID = len(users) + 1
		users[u.ID] = u
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(u)
	})

	r.Get("/ping", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("pong"))
	})

	return &http.Server{Addr: apiAddr, Handler: r}
}

func main() {
	ctx := context.Background()

	// 1. Start the demo API server
	apiServer := newAPIServer()
	go func() {
		log.Printf("Starting demo API server on %s", apiAddr)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server failed: %v", err)
		}
	}()

	// 2. Build the fetch client with logging and request correlation
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	analytics := fetch.NewAnalytics()
	client := fetch.New(
		fetch.WithBaseURL("http://localhost"+apiAddr),
		fetch.WithHeader("X-Demo", "fetch-go"),
		fetch.WithTimeout(5*time.Second),
		fetch.WithAnalytics(analytics),
		fetch.WithObserver(fetch.ChainObservers(
			fetch.CorrelationObserver("X-Request-Id"),
			fetch.LoggingObserver(logger),
		)),
	)

	// 3. Expose client analytics over Prometheus
	registry := prometheus.NewRegistry()
	registry.MustRegister(analytics.Collector())

	metricsServer := &http.Server{Addr: metricsAddr, Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{})}
	go func() {
		log.Printf("Starting Prometheus metrics server on %s", metricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Metrics server failed: %v", err)
		}
	}()

	// 4. Drive traffic through the client in a loop
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	fmt.Println("✅ fetch-go demo started!")
	fmt.Println("📊 Prometheus metrics: http://localhost:2112/metrics")
	fmt.Println("Press Ctrl+C to stop...")

	next := 1
	for {
		select {
		case <-ticker.C:
			var u user
			if _, err := client.Get(ctx, fmt.Sprintf("/users/%d", next%3), &fetch.RequestOptions{Into: &u}); err != nil {
				log.Printf("GET user: %v", err)
			} else {
				log.Printf("✓ fetched %s", u.Name)
			}

			if _, err := client.Post(ctx, "/users", user{Name: "Margaret Hamilton", Email: "margaret@example.com"}, nil); err != nil {
				log.Printf("POST user: %v", err)
			}

			if resp, err := client.Get(ctx, "/ping", nil); err == nil {
				body, _ := resp.Text()
				log.Printf("✓ ping: %s", body)
			}

			snap := analytics.Snapshot()
			log.Printf("analytics: total=%d succeeded=%d failed=%d mean=%s",
				snap.TotalRequests, snap.SuccessfulRequests, snap.FailedRequests, snap.AverageLatency)
			next++

		case <-sigChan:
			fmt.Println("\n🛑 Shutting down gracefully...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := apiServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("API server shutdown error: %v", err)
			}
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Metrics server shutdown error: %v", err)
			}
			return
		}
	}
}
