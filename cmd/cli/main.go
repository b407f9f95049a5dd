package main

import (
	"context"
	"log"
	"os"

	"github.com/rmoreira/quizforge/internal/buildinfo"
	"github.com/rmoreira/quizforge/internal/client/cli"
	"github.com/rmoreira/quizforge/internal/client/config"
	"github.com/rmoreira/quizforge/internal/logging"
)

func main() {

	buildinfo.Print(os.Stdout)

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewTextLogger(os.Stderr, cfg.SlogLevel())

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
