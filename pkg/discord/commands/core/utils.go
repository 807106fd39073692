package core

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// OptionExtractor simplifica a extração de opções de comandos slash
type OptionExtractor struct {
	options []*discordgo.ApplicationCommandInteractionDataOption
}

// NewOptionExtractor cria um novo extrator de opções
func NewOptionExtractor(options []*discordgo.ApplicationCommandInteractionDataOption) *OptionExtractor {
	return &OptionExtractor{options: options}
}

// String extrai uma opção de texto pelo nome
func (e *OptionExtractor) String(name string) string {
	for _, opt := range e.options {
		if opt.Name == name {
			return strings.TrimSpace(opt.StringValue())
		}
	}
	return ""
}

// StringRequired extrai uma opção de texto obrigatória
func (e *OptionExtractor) StringRequired(name string) (string, error) {
	value := e.String(name)
	if value == "" {
		return "", NewCommandError(fmt.Sprintf("A opção '%s' é obrigatória.", name), true)
	}
	return value, nil
}

// Int extrai uma opção inteira pelo nome
func (e *OptionExtractor) Int(name string) int64 {
	for _, opt := range e.options {
		if opt.Name == name {
			return opt.IntValue()
		}
	}
	return 0
}

// Bool extrai uma opção booleana pelo nome
func (e *OptionExtractor) Bool(name string) bool {
	for _, opt := range e.options {
		if opt.Name == name {
			return opt.BoolValue()
		}
	}
	return false
}

// HasOption verifica se uma opção foi informada
func (e *OptionExtractor) HasOption(name string) bool {
	for _, opt := range e.options {
		if opt.Name == name {
			return true
		}
	}
	return false
}

// InteractionUserID retorna o ID do usuário da interação, cobrindo
// interações em servidores (Member) e em DMs (User).
func InteractionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// IsSlashCommandInteraction verifica se a interação é um comando slash
func IsSlashCommandInteraction(i *discordgo.InteractionCreate) bool {
	return i.Type == discordgo.InteractionApplicationCommand
}

// IsComponentInteraction verifica se a interação é de um componente (botão)
func IsComponentInteraction(i *discordgo.InteractionCreate) bool {
	return i.Type == discordgo.InteractionMessageComponent
}

// IsModalSubmitInteraction verifica se a interação é o envio de um modal
func IsModalSubmitInteraction(i *discordgo.InteractionCreate) bool {
	return i.Type == discordgo.InteractionModalSubmit
}

// CompareCommands compara os campos relevantes de dois comandos para
// decidir se o registro no Discord precisa ser atualizado.
func CompareCommands(a, b *discordgo.ApplicationCommand) bool {
	type view struct {
		Name        string                                `json:"name"`
		Description string                                `json:"description"`
		Options     []*discordgo.ApplicationCommandOption `json:"options"`
	}
	ba, _ := json.Marshal(view{a.Name, a.Description, a.Options})
	bb, _ := json.Marshal(view{b.Name, b.Description, b.Options})
	return string(ba) == string(bb)
}
