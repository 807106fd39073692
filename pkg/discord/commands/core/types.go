package core

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/files"
)

// Command representa um comando slash do bot
type Command interface {
	Name() string
	Description() string
	Options() []*discordgo.ApplicationCommandOption
	Handle(ctx *Context) error
	RequiresGuild() bool
}

// Context fornece contexto unificado para execução de comandos
type Context struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	Config      *files.ConfigManager
	Logger      *slog.Logger
	GuildID     string
	ChannelID   string
	UserID      string
}

// CommandError representa erros específicos de comandos. A mensagem é
// mostrada ao usuário; erros de outros tipos viram uma resposta genérica.
type CommandError struct {
	Message   string
	Ephemeral bool
}

func (e *CommandError) Error() string {
	return e.Message
}

// NewCommandError cria um novo erro de comando
func NewCommandError(message string, ephemeral bool) *CommandError {
	return &CommandError{
		Message:   message,
		Ephemeral: ephemeral,
	}
}
