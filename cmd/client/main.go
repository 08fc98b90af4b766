package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"IEats/internal/cli/commands"
	"IEats/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// env + .env + flags, общий конфиг с сервером
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion(cfg)
		return
	}

	// Ctrl+C прерывает текущий HTTP-запрос через контекст
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Dispatch(ctx, cfg, flag.Args())
	stop()
	os.Exit(code)
}

func printVersion(cfg *config.Config) {
	fmt.Printf("IEats CLI %s (built %s)\n", version, buildDate)
	fmt.Printf("Server:     %s\n", cfg.ServerURL)
	fmt.Printf("Token file: %s\n", cfg.TokenFile)
}
