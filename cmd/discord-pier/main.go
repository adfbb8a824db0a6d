// Command discord-pier relays messages between Discord channels and serves the .pinned command.
//
// Usage:
//
//	discord-pier --config config.yaml
//
// Then, in a Discord channel where the bot is present, type:
//
//	.pinned
//	.pinned general
//	.help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"
	"github.com/spf13/cobra"

	"github.com/oklahomer/go-discord-pier"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "discord-pier",
	Short: "Relay messages between Discord channels",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML configuration file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(_ *cobra.Command, _ []string) error {
	config, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	bridge := newMirrorBridge(config.Mirrors)
	pier, err := discord.NewPier(config.Discord, bridge)
	if err != nil {
		return fmt.Errorf("failed to create pier: %w", err)
	}
	bridge.sender = pier

	// Create a Bot with the pier and an in-memory user context storage.
	storage := sarah.NewUserContextStorage(sarah.NewCacheConfig())
	sarah.RegisterBot(sarah.NewBot(pier, sarah.BotWithStorage(storage)))
	registerPinnedCommand(pier)

	// Set up a context that cancels on SIGINT or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err = sarah.Run(ctx, sarah.NewConfig())
	if err != nil {
		return fmt.Errorf("failed to run: %w", err)
	}

	logger.Infof("Pier is running. Press Ctrl+C to stop.")

	// Block until shutdown signal.
	<-ctx.Done()

	logger.Infof("Shutting down...")
	return nil
}
