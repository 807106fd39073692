package main

import (
	"os"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/app"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/log"
)

// main is the entry point of the Discord bot.
func main() {
	if err := app.Run("albionbot", "DISCORD_TOKEN"); err != nil {
		log.ErrorLogger().Error("Fatal", "error", err)
		os.Exit(1)
	}
}
