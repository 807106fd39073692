package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/control"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/discord/commands"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/discord/events"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/discord/session"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/files"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/group"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/log"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/storage"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/sweep"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/util"

	corecmd "github.com/hevertonluis504-cpu/Albion-bot/pkg/discord/commands/core"
)

// Run bootstraps the bot with a unified flow and blocks until shutdown.
// tokenEnv is the environment variable containing the bot token; it is read
// from the process environment first, then from .env and the
// $HOME/.local/bin/.env fallback.
func Run(appName, tokenEnv string) error {
	started := time.Now()

	token, loadErr := util.LoadEnv(tokenEnv)

	// Logger first so subsequent steps can log meaningfully
	if err := log.SetupLogger(util.LogsDir()); err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	defer log.Sync()

	log.ApplicationLogger().Info(fmt.Sprintf("🚀 Starting %s...", appName))

	if loadErr != nil {
		return fmt.Errorf("%s not set in environment or .env file", tokenEnv)
	}

	// Settings file
	configManager := files.NewConfigManager(util.SettingsPath())
	if err := configManager.LoadConfig(); err != nil {
		log.ErrorLogger().Error("Failed to load settings file", "error", err)
	}

	// SQLite snapshot store
	dbStore := storage.NewStore(util.GroupDBPath())
	if err := dbStore.Init(); err != nil {
		return fmt.Errorf("initialize SQLite store: %w", err)
	}
	defer dbStore.Close()

	// In-memory group store, rehydrated from the last snapshot
	groupStore := group.NewStore(dbStore)
	if err := groupStore.Load(); err != nil {
		return fmt.Errorf("load group snapshots: %w", err)
	}
	log.ApplicationLogger().Info("Group snapshots loaded", "groups", groupStore.Len())

	// Discord session
	log.DiscordLogger().Info("🔑 Attempting to authenticate with Discord API...")
	discordSession, err := session.NewDiscordSession(token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}
	defer discordSession.Close()

	// Commands + panel interactions
	commandManager := corecmd.NewCommandManager(discordSession, configManager)
	commands.RegisterAll(commandManager.Router(), groupStore)
	events.NewHandler(groupStore).Register(commandManager.Router())
	if err := commandManager.SetupCommands(); err != nil {
		return fmt.Errorf("configure slash commands: %w", err)
	}
	log.ApplicationLogger().Info("🔗 Slash commands sync completed")

	// Periodic sweep
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper := sweep.New(groupStore, events.NewPanelService(discordSession), configManager.SweepInterval())
	sweeper.Start(ctx)
	defer sweeper.Stop()

	// Keep-alive server, enabled when PORT is set
	keepAlive := control.NewServer(keepAliveAddr())
	if err := keepAlive.Start(); err != nil {
		return fmt.Errorf("start keep-alive server: %w", err)
	}
	defer keepAlive.Stop(context.Background())

	log.ApplicationLogger().Info(fmt.Sprintf("🎯 %s initialized successfully in %s", appName, time.Since(started).Round(time.Millisecond)))
	log.ApplicationLogger().Info(fmt.Sprintf("🤖 %s running. Press Ctrl+C to stop...", appName))

	util.WaitForInterrupt()

	log.ApplicationLogger().Info("Shutting down...")
	return nil
}

// keepAliveAddr resolves the keep-alive bind address from PORT. An empty
// PORT disables the server.
func keepAliveAddr() string {
	if port := util.EnvOr("PORT", ""); port != "" {
		return ":" + port
	}
	return ""
}
