package core

import (
	"github.com/bwmarrin/discordgo"
)

// Responder padroniza as respostas de interação do bot
type Responder struct {
	session *discordgo.Session
}

// NewResponder cria um novo respondedor de interações
func NewResponder(session *discordgo.Session) *Responder {
	return &Responder{session: session}
}

// Success envia uma resposta de sucesso visível no canal
func (r *Responder) Success(i *discordgo.InteractionCreate, message string) error {
	return r.respond(i, "✅ "+message, 0)
}

// Error envia uma resposta de erro visível apenas para o usuário
func (r *Responder) Error(i *discordgo.InteractionCreate, message string) error {
	return r.respond(i, "❌ "+message, discordgo.MessageFlagsEphemeral)
}

// Ephemeral envia uma resposta simples visível apenas para o usuário
func (r *Responder) Ephemeral(i *discordgo.InteractionCreate, message string) error {
	return r.respond(i, message, discordgo.MessageFlagsEphemeral)
}

// Content envia uma resposta de texto visível no canal
func (r *Responder) Content(i *discordgo.InteractionCreate, message string) error {
	return r.respond(i, message, 0)
}

// Embed responde com um embed e componentes, visível no canal
func (r *Responder) Embed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	return r.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

// UpdateMessage atualiza a mensagem que originou a interação de componente
func (r *Responder) UpdateMessage(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	return r.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

// DeferredUpdate confirma a interação sem alterar a mensagem
func (r *Responder) DeferredUpdate(i *discordgo.InteractionCreate) error {
	return r.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

// Modal abre um modal para o usuário
func (r *Responder) Modal(i *discordgo.InteractionCreate, customID, title string, components []discordgo.MessageComponent) error {
	return r.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: components,
		},
	})
}

// EditOriginal altera a mensagem criada pela resposta da interação
func (r *Responder) EditOriginal(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	_, err := r.session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
	return err
}

// OriginalResponse busca a mensagem criada pela resposta da interação
func (r *Responder) OriginalResponse(i *discordgo.InteractionCreate) (*discordgo.Message, error) {
	return r.session.InteractionResponse(i.Interaction)
}

func (r *Responder) respond(i *discordgo.InteractionCreate, content string, flags discordgo.MessageFlags) error {
	return r.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   flags,
		},
	})
}
