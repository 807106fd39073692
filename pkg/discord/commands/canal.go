package commands

import (
	"github.com/bwmarrin/discordgo"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/discord/commands/core"
)

// CanalCommand define o canal de eventos do servidor
type CanalCommand struct{}

// NewCanalCommand cria o comando /canal
func NewCanalCommand() *CanalCommand {
	return &CanalCommand{}
}

func (c *CanalCommand) Name() string { return "canal" }

func (c *CanalCommand) Description() string {
	return "Define o canal atual como canal de eventos da guild"
}

func (c *CanalCommand) Options() []*discordgo.ApplicationCommandOption {
	return nil
}

func (c *CanalCommand) RequiresGuild() bool { return true }

func (c *CanalCommand) Handle(ctx *core.Context) error {
	if err := ctx.Config.SetEventChannel(ctx.GuildID, ctx.ChannelID); err != nil {
		ctx.Logger.Error("Failed to save event channel", "error", err)
		return core.NewCommandError("Não foi possível salvar a configuração.", true)
	}

	ctx.Logger.Info("Event channel configured", "channel_id", ctx.ChannelID)
	return core.NewResponder(ctx.Session).Success(ctx.Interaction, "Canal de eventos configurado.")
}
