// Package events trata as interações de componentes do painel de grupos:
// botões de entrada e saída, encerramento e o fluxo de edição via modal.
package events

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/discord/commands/core"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/discord/render"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/group"
)

// Handler roteia interações de botões e modais do painel de grupos
type Handler struct {
	store   *group.Store
	pending *pendingEdits
	now     func() time.Time
}

// NewHandler cria um novo handler de interações do painel
func NewHandler(store *group.Store) *Handler {
	return &Handler{
		store:   store,
		pending: newPendingEdits(),
		now:     time.Now,
	}
}

// Register liga o handler ao roteador de comandos.
func (h *Handler) Register(router *core.CommandRouter) {
	router.RegisterComponentHandler(h.HandleComponent)
	router.RegisterModalHandler(h.HandleModal)
}

// HandleComponent processa cliques nos botões do painel
func (h *Handler) HandleComponent(ctx *core.Context) {
	parsed, ok := render.ParseCustomID(ctx.Interaction.MessageComponentData().CustomID)
	if !ok {
		return
	}

	responder := core.NewResponder(ctx.Session)
	logger := ctx.Logger.With("group_id", parsed.Subject, "action", parsed.Action)

	var (
		snap *group.Group
		err  error
	)
	switch parsed.Action {
	case "entrar":
		snap, err = h.join(ctx.UserID, parsed)
	case "sair":
		snap, err = h.leave(ctx.UserID, parsed.Subject)
	case "encerrar":
		snap, err = h.store.Close(parsed.Subject, ctx.UserID)
	case "editar":
		h.openEditModal(ctx, responder, parsed.Subject)
		return
	default:
		return
	}

	if err != nil {
		logger.Warn("Panel interaction rejected", "error", err)
		responder.Ephemeral(ctx.Interaction, rejectionMessage(err))
		return
	}

	vm := group.Project(snap, h.now())
	components := render.BuildComponents(snap.ID, vm)
	if components == nil {
		// Encerrar precisa remover os botões da mensagem.
		components = []discordgo.MessageComponent{}
	}
	if err := responder.UpdateMessage(ctx.Interaction, render.BuildEmbed(vm), components); err != nil {
		logger.Error("Failed to update event panel", "error", err)
	}
}

func (h *Handler) join(userID string, parsed render.ParsedCustomID) (*group.Group, error) {
	snap, err := h.store.Get(parsed.Subject)
	if err != nil {
		return nil, err
	}
	// Painéis antigos podem carregar botões ativos depois do início.
	if snap.DeriveStatus(h.now()) == group.StatusStarted {
		return nil, group.ErrAlreadyStarted
	}
	if parsed.RoleIndex >= len(snap.Roles.Order) {
		return nil, group.ErrUnknownRole
	}
	return h.store.Join(parsed.Subject, userID, snap.Roles.Order[parsed.RoleIndex])
}

func (h *Handler) leave(userID, groupID string) (*group.Group, error) {
	snap, err := h.store.Get(groupID)
	if err != nil {
		return nil, err
	}
	if snap.DeriveStatus(h.now()) == group.StatusStarted {
		return nil, group.ErrAlreadyStarted
	}
	return h.store.Leave(groupID, userID)
}

// openEditModal abre o modal de edição para o criador do grupo.
func (h *Handler) openEditModal(ctx *core.Context, responder *core.Responder, groupID string) {
	snap, err := h.store.Get(groupID)
	if err != nil {
		responder.Ephemeral(ctx.Interaction, rejectionMessage(err))
		return
	}
	if snap.CreatorID != ctx.UserID {
		responder.Ephemeral(ctx.Interaction, rejectionMessage(group.ErrNotCreator))
		return
	}
	if snap.Closed {
		responder.Ephemeral(ctx.Interaction, rejectionMessage(group.ErrAlreadyClosed))
		return
	}

	token := h.pending.open(groupID, ctx.UserID)
	start := snap.StartTime.In(group.BrazilZone)

	modal := []discordgo.MessageComponent{
		textInputRow("titulo", "Tipo do evento", snap.Title, true),
		textInputRow("descricao", "Descrição", snap.Description, false),
		textInputRow("jogadores", "Total de jogadores", strconv.Itoa(snap.TotalCapacity), true),
		textInputRow("classes", "Classes (ex: 2 Tank, 3 Healer)", roleSpecString(snap.Roles), true),
		textInputRow("quando", "Quando (DD/MM/AAAA HH:MM)", start.Format("02/01/2006 15:04"), true),
	}
	customID := render.CustomIDEditModal + ":" + token
	if err := responder.Modal(ctx.Interaction, customID, "Editar grupo", modal); err != nil {
		ctx.Logger.Error("Failed to open edit modal", "group_id", groupID, "error", err)
	}
}

// HandleModal processa o envio do modal de edição
func (h *Handler) HandleModal(ctx *core.Context) {
	data := ctx.Interaction.ModalSubmitData()
	parsed, ok := render.ParseCustomID(data.CustomID)
	if !ok || parsed.Action != "editar-modal" {
		return
	}

	responder := core.NewResponder(ctx.Session)
	// Em envios de modal, Subject carrega o token da sessão de edição.
	entry, ok := h.pending.claim(parsed.Subject)
	if !ok {
		responder.Ephemeral(ctx.Interaction, "A sessão de edição expirou. Clique em Editar novamente.")
		return
	}

	values := modalValues(data)
	players, err := strconv.Atoi(strings.TrimSpace(values["jogadores"]))
	if err != nil {
		responder.Ephemeral(ctx.Interaction, "Total de jogadores inválido.")
		return
	}
	date, hour, ok := splitWhen(values["quando"])
	if !ok {
		responder.Ephemeral(ctx.Interaction, "Use o formato DD/MM/AAAA HH:MM.")
		return
	}

	snap, err := h.store.Edit(entry.groupID, ctx.UserID, group.EditRequest{
		Title:        strings.TrimSpace(values["titulo"]),
		Description:  strings.TrimSpace(values["descricao"]),
		TotalPlayers: players,
		RoleSpec:     values["classes"],
		Date:         date,
		Time:         hour,
	}, h.now())
	if err != nil {
		ctx.Logger.Warn("Group edit rejected", "group_id", entry.groupID, "error", err)
		responder.Ephemeral(ctx.Interaction, rejectionMessage(err))
		return
	}

	vm := group.Project(snap, h.now())
	components := render.BuildComponents(snap.ID, vm)
	if _, err := ctx.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    snap.ChannelID,
		ID:         snap.ID,
		Embeds:     &[]*discordgo.MessageEmbed{render.BuildEmbed(vm)},
		Components: &components,
	}); err != nil {
		ctx.Logger.Error("Failed to refresh event panel after edit", "group_id", snap.ID, "error", err)
	}

	ctx.Logger.Info("Group edited", "group_id", snap.ID)
	responder.Ephemeral(ctx.Interaction, "✅ Grupo atualizado.")
}

func textInputRow(customID, label, value string, required bool) discordgo.MessageComponent {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID: customID,
			Label:    label,
			Style:    discordgo.TextInputShort,
			Value:    value,
			Required: required,
		},
	}}
}

func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range ar.Components {
			if input, ok := comp.(*discordgo.TextInput); ok {
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}

// splitWhen separa "DD/MM/AAAA HH:MM" em data e horário.
func splitWhen(s string) (date, hour string, ok bool) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// roleSpecString reconstrói a string de classes a partir da tabela de vagas.
func roleSpecString(roles group.RoleTable) string {
	clauses := make([]string, 0, len(roles.Order))
	for _, name := range roles.Order {
		clauses = append(clauses, fmt.Sprintf("%d %s", roles.Specs[name].Capacity, name))
	}
	return strings.Join(clauses, ", ")
}

// rejectionMessage traduz erros de domínio em mensagens para o usuário.
func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, group.ErrGroupNotFound):
		return "Este painel expirou. Crie um novo grupo com /criar."
	case errors.Is(err, group.ErrAlreadyClosed):
		return "Este grupo já foi encerrado."
	case errors.Is(err, group.ErrAlreadyStarted):
		return "Este evento já começou. As vagas estão travadas."
	case errors.Is(err, group.ErrRoleFull):
		return "Esta classe já está cheia."
	case errors.Is(err, group.ErrUnknownRole):
		return "Esta classe não existe mais neste grupo."
	case errors.Is(err, group.ErrNotCreator):
		return "Apenas o criador do grupo pode fazer isso."
	case errors.Is(err, group.ErrInvalidSchedule):
		return "Data ou horário inválido. Use DD/MM/AAAA e HH:MM (UTC-3), em um momento futuro."
	default:
		var vErr *group.ValidationError
		if errors.As(err, &vErr) {
			return vErr.Message
		}
		return "Não foi possível concluir a ação."
	}
}
