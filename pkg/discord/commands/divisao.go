package commands

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/bwmarrin/discordgo"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/discord/commands/core"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/group"
)

var mentionPattern = regexp.MustCompile(`<@!?(\d+)>`)

// DivisaoCommand calcula a divisão de loot entre os participantes
type DivisaoCommand struct{}

// NewDivisaoCommand cria o comando /divisao
func NewDivisaoCommand() *DivisaoCommand {
	return &DivisaoCommand{}
}

func (c *DivisaoCommand) Name() string { return "divisao" }

func (c *DivisaoCommand) Description() string {
	return "Divide o valor do loot entre os participantes"
}

func (c *DivisaoCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "valor",
			Description: "Valor total do loot em prata",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "pessoas",
			Description: "Quantidade de participantes",
			Required:    false,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "mencoes",
			Description: "Menções dos participantes (@fulano @ciclano)",
			Required:    false,
		},
	}
}

func (c *DivisaoCommand) RequiresGuild() bool { return false }

func (c *DivisaoCommand) Handle(ctx *core.Context) error {
	extractor := core.NewOptionExtractor(ctx.Interaction.ApplicationCommandData().Options)

	total := int(extractor.Int("valor"))
	explicit := int(extractor.Int("pessoas"))
	mentioned := mentionPattern.FindAllString(extractor.String("mencoes"), -1)

	count := group.EffectiveParticipants(explicit, len(mentioned))
	share, remainder, err := group.Divide(total, count)
	if err != nil {
		if errors.Is(err, group.ErrInvalidParticipants) {
			return core.NewCommandError("Informe a quantidade de pessoas ou mencione os participantes.", true)
		}
		return err
	}

	msg := fmt.Sprintf("💰 **Divisão de loot**\nTotal: %d de prata\nParticipantes: %d\nCada um recebe: **%d**", total, count, share)
	if remainder > 0 {
		msg += fmt.Sprintf("\nSobra: %d", remainder)
	}

	return core.NewResponder(ctx.Session).Content(ctx.Interaction, msg)
}
