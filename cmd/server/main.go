package main

import (
	"fmt"
	"os"
	"time"

	"go-decisions/internal/api"
	"go-decisions/internal/config"
	"go-decisions/internal/db"
	redisdb "go-decisions/internal/redis"
	"go-decisions/internal/scanner"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := db.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	rdb := redisdb.NewClient(cfg)

	if cfg.Reminders.Enabled {
		var notifier scanner.Notifier = scanner.LogNotifier{}
		if cfg.Reminders.NotifyCommand != "" {
			notifier = scanner.CommandNotifier{Command: cfg.Reminders.NotifyCommand}
		}
		interval := time.Duration(cfg.Reminders.IntervalMinutes) * time.Minute
		worker := scanner.New(db.DB, notifier, interval, cfg.Reminders.Schedule)
		go worker.Start()
		defer worker.Stop()
	}

	r := api.SetupRouter(cfg, rdb)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s%s\n", addr, cfg.Server.Subpath)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
