// cmd/mediabackup/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/semmidev/mediasafe/internal/app"
	"github.com/semmidev/mediasafe/internal/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v\n", err)
	}
}

func run() error {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run a single manual backup session and exit")
	enable := flag.String("backup-images", "", "set the automatic backup opt-in (true/false) and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer application.Shutdown()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch {
	case *enable != "":
		effective, err := application.SetBackupImages(ctx, *enable == "true")
		if err != nil {
			return fmt.Errorf("set backup opt-in: %w", err)
		}
		fmt.Printf("automatic backup enabled: %v\n", effective)
		return nil

	case *once:
		return application.RunOnce(ctx)

	default:
		return application.Run(ctx)
	}
}
