// Command main publishes a system announcement to every connected
// WebSocket client across all server instances.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"time"

	"ripple/internal/cache"
	"ripple/internal/config"
	"ripple/internal/notifications"
)

func main() {
	message := flag.String("message", "", "Announcement text to broadcast")
	flag.Parse()

	if *message == "" {
		log.Fatal("announce: -message is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	cache.InitRedis(cfg.RedisURL)
	rdb := cache.GetClient()
	if rdb == nil {
		log.Fatal("announce: Redis is not configured")
	}

	payload, err := json.Marshal(map[string]any{
		"kind":       "system",
		"message":    *message,
		"created_at": time.Now(),
	})
	if err != nil {
		log.Fatalf("Failed to encode announcement: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	notifier := notifications.NewNotifier(rdb)
	if err := notifier.PublishBroadcast(ctx, string(payload)); err != nil {
		log.Fatalf("Failed to publish announcement: %v", err)
	}

	log.Println("📣 Announcement published")
}
