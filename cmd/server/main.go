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

	"quick-chat-relay/internal/config"
	"quick-chat-relay/internal/handlers"
	"quick-chat-relay/internal/router"
	"quick-chat-relay/internal/services"
)

func main() {
	log.Println("🚀 Starting Quick Chat relay...")

	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("✗ Configuration error: %v", err)
	}
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(
		context.Background(),
		cfg.APIKey,
		cfg.Generation,
		cfg.RequestTimeout,
	)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Printf("✓ Gemini client initialized (model=%s, temperature=%.1f, max_output_tokens=%d)",
		cfg.Generation.Model, cfg.Generation.Temperature, cfg.Generation.MaxOutputTokens)

	// ──── Step 3: Start HTTP Server ────
	chatHandler := handlers.NewChatHandler(geminiService, cfg.MaxMessageChars)
	r := router.New(chatHandler, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	idle := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
		close(idle)
	}()

	log.Printf("✓ Quick Chat relay ready on http://localhost:%s (env=%s)", cfg.Port, cfg.Env)
	log.Printf("  API:  POST http://localhost:%s/api/chat", cfg.Port)
	log.Printf("  CORS: %s", cfg.AllowedOrigin)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	<-idle
}
