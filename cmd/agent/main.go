package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/husarprojects/healthsync/internal/agent"
	"github.com/husarprojects/healthsync/internal/config"
	"github.com/husarprojects/healthsync/internal/logger"
	"github.com/husarprojects/healthsync/internal/notify"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("healthsync-agent")
	cfg, err := config.GetAgentConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	notifier := notify.NewLogNotifier(log.GetChildLogger())

	app, err := agent.NewApp(cfg, notifier, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init agent error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("agent run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
