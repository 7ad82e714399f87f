package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"TeleAdmin/cache"
	"TeleAdmin/config"
	"TeleAdmin/database"
	"TeleAdmin/routes"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine in deployed environments.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize Redis for the snapshot cache, session mirror and feed
	redisConfig, err := database.LoadRedisConfig()
	if err != nil {
		log.Fatalf("failed to load Redis configuration: %v", err)
	}
	redisClient, err := database.NewRedisClient(redisConfig)
	if err != nil {
		log.Fatalf("failed to initialize Redis client: %v", err)
	}

	store, err := cache.NewStore(redisClient)
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}

	handler, app, err := routes.SetupRoutes(store, config, redisClient)
	if err != nil {
		log.Fatalf("failed to set up routes: %v", err)
	}

	// The notification feed runs for the life of the process. A dropped
	// subscription flips the connection indicator instead of restarting.
	feedCtx, cancelFeed := context.WithCancel(context.Background())
	defer cancelFeed()
	go app.Feed.Run(feedCtx)

	srv := &http.Server{
		Addr:           config.ListenAddr,
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		log.Printf("Starting console server on %s", config.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown handling
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Println("Shutting down server...")
	cancelFeed()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %+v", err)
	}

	wg.Wait()
	log.Println("Server exited gracefully")
}
