package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mozo/internal/api"
	"mozo/internal/catalog"
	"mozo/internal/chat"
	"mozo/internal/config"
	"mozo/internal/models/providers"
	"mozo/internal/monitoring"
)

var (
	port        = flag.Int("port", 8080, "API server port")
	metricsPort = flag.Int("metrics-port", 9090, "Metrics server port")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize the LLM gateway
	gateway, err := providers.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM gateway: %v", err)
	}

	// Load the menu catalog
	store, err := catalog.OpenStore(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open menu store: %v", err)
	}
	defer store.Close()

	cat, err := store.Load()
	if err != nil {
		log.Fatalf("Failed to load menu: %v", err)
	}
	log.Printf("Loaded menu with %d items", cat.Len())

	// Wire sessions and the API server
	sessions := chat.NewManager(gateway, cat, cfg.HistoryLimit)
	monitor := monitoring.NewMonitor()
	server := api.NewServer(sessions, cat, monitor)

	if cfg.MetricsConfig.Enabled {
		go startMetricsServer(*metricsPort, cfg.MetricsConfig.Path)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}

		cancel()
	}()

	log.Printf("Starting API server on port %d", *port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func startMetricsServer(port int, path string) {
	if path == "" {
		path = "/metrics"
	}

	metricsRouter := gin.Default()
	metricsRouter.GET(path, gin.WrapH(promhttp.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
