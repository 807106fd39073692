package commands

import (
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/discord/commands/core"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/discord/render"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/group"
)

// CriarCommand cria um novo grupo de evento com vagas por classe
type CriarCommand struct {
	store *group.Store
}

// NewCriarCommand cria o comando /criar
func NewCriarCommand(store *group.Store) *CriarCommand {
	return &CriarCommand{store: store}
}

func (c *CriarCommand) Name() string { return "criar" }

func (c *CriarCommand) Description() string {
	return "Cria um grupo de evento com vagas por classe"
}

func (c *CriarCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "tipo",
			Description: "Tipo do evento (ex: Avalon, Roads, ZvZ)",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "jogadores",
			Description: "Total de jogadores do grupo",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "classes",
			Description: "Classes e vagas, ex: 2 Tank, 3 Healer, 10 DPS",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "data",
			Description: "Data do evento (DD/MM/AAAA)",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "horario",
			Description: "Horário do evento (HH:MM, UTC-3)",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "descricao",
			Description: "Descrição adicional do evento",
			Required:    false,
		},
	}
}

func (c *CriarCommand) RequiresGuild() bool { return true }

func (c *CriarCommand) Handle(ctx *core.Context) error {
	extractor := core.NewOptionExtractor(ctx.Interaction.ApplicationCommandData().Options)

	tipo, err := extractor.StringRequired("tipo")
	if err != nil {
		return err
	}
	classes, err := extractor.StringRequired("classes")
	if err != nil {
		return err
	}
	data, err := extractor.StringRequired("data")
	if err != nil {
		return err
	}
	horario, err := extractor.StringRequired("horario")
	if err != nil {
		return err
	}

	if cfg := ctx.Config.GuildConfig(ctx.GuildID); cfg != nil && cfg.EventChannelID != "" && cfg.EventChannelID != ctx.ChannelID {
		return core.NewCommandError("Use o canal de eventos configurado para criar grupos.", true)
	}

	now := time.Now()
	g, err := group.New(group.Params{
		ChannelID:    ctx.ChannelID,
		Title:        tipo,
		Description:  extractor.String("descricao"),
		TotalPlayers: int(extractor.Int("jogadores")),
		RoleSpec:     classes,
		Date:         data,
		Time:         horario,
		CreatorID:    ctx.UserID,
	}, now)
	if err != nil {
		return creationError(err)
	}

	responder := core.NewResponder(ctx.Session)
	vm := group.Project(g, now)

	// O ID do grupo é o ID da mensagem do painel, então o embed sai
	// primeiro sem botões e os componentes entram na sequência.
	if err := responder.Embed(ctx.Interaction, render.BuildEmbed(vm), nil); err != nil {
		return err
	}
	msg, err := responder.OriginalResponse(ctx.Interaction)
	if err != nil {
		return err
	}

	g.ID = msg.ID
	if err := c.store.Insert(g); err != nil {
		return err
	}

	if err := responder.EditOriginal(ctx.Interaction, render.BuildEmbed(vm), render.BuildComponents(g.ID, vm)); err != nil {
		ctx.Logger.Warn("Failed to attach components to event panel", "group_id", g.ID, "error", err)
	}

	ctx.Logger.Info("Group created", "group_id", g.ID, "title", g.Title, "players", g.TotalCapacity)
	return nil
}

// creationError traduz erros de validação em mensagens para o usuário.
func creationError(err error) error {
	var vErr *group.ValidationError
	if errors.As(err, &vErr) {
		return core.NewCommandError(vErr.Message, true)
	}
	if errors.Is(err, group.ErrInvalidSchedule) {
		return core.NewCommandError("Data ou horário inválido. Use DD/MM/AAAA e HH:MM (UTC-3), em um momento futuro.", true)
	}
	if errors.Is(err, group.ErrNoValidRoles) {
		return core.NewCommandError("Nenhuma classe válida. Use o formato '2 Tank, 3 Healer, 10 DPS'.", true)
	}
	return err
}
