package session

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/log"
)

// NewDiscordSession cria e abre uma sessão do Discord com as intents
// necessárias para comandos de aplicação e interações de componentes.
func NewDiscordSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, fmt.Errorf("discord token is empty")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Interações chegam pelo gateway mesmo sem intents de mensagem.
	session.Identify.Intents = discordgo.IntentsGuilds

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.DiscordLogger().Info("Discord session opened",
		"user", session.State.User.Username,
		"id", session.State.User.ID,
	)

	return session, nil
}
