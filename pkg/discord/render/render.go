// Package render converte o estado de um grupo em mensagens do Discord:
// o embed com o painel do evento e as fileiras de botões de interação.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/group"
)

// Prefixos de custom ID dos componentes do painel.
const (
	CustomIDJoin  = "grupo:entrar"
	CustomIDLeave = "grupo:sair"
	CustomIDClose = "grupo:encerrar"
	CustomIDEdit  = "grupo:editar"

	// CustomIDEditModal prefixa envios do modal de edição.
	CustomIDEditModal = "grupo:editar-modal"
)

const embedFooter = "Sistema Guild PRO"

const maxButtonsPerRow = 5

// BuildEmbed monta o embed do painel a partir de um ViewModel.
func BuildEmbed(vm group.ViewModel) *discordgo.MessageEmbed {
	var sb strings.Builder
	if vm.Description != "" {
		sb.WriteString(vm.Description)
		sb.WriteString("\n\n")
	}
	fmt.Fprintf(&sb, "**Status:** %s\n", vm.StatusLabel)
	fmt.Fprintf(&sb, "**Início:** <t:%d:F> (%s)\n", vm.StartUnix, vm.Countdown)
	fmt.Fprintf(&sb, "**Vagas:** %d/%d\n", vm.Joined, vm.Total)

	fields := make([]*discordgo.MessageEmbedField, 0, len(vm.Roles))
	for _, role := range vm.Roles {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s %s (%d/%d)", role.Emoji, role.Name, role.Filled, role.Capacity),
			Value:  roleFieldValue(role),
			Inline: true,
		})
	}

	return &discordgo.MessageEmbed{
		Title:       vm.Title,
		Description: sb.String(),
		Color:       vm.Color,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: embedFooter},
	}
}

func roleFieldValue(role group.RoleView) string {
	var sb strings.Builder
	sb.WriteString(role.Bar)
	for _, id := range role.Members {
		sb.WriteString("\n<@")
		sb.WriteString(id)
		sb.WriteString(">")
	}
	if len(role.Members) == 0 {
		sb.WriteString("\n*vazio*")
	}
	return sb.String()
}

// BuildComponents monta as fileiras de botões do painel. Grupos encerrados
// não recebem componentes; grupos já iniciados mantêm apenas Editar e
// Encerrar ativos, com a movimentação de vagas bloqueada.
func BuildComponents(groupID string, vm group.ViewModel) []discordgo.MessageComponent {
	if vm.Closed {
		return nil
	}
	started := vm.Status == group.StatusStarted

	var rows []discordgo.MessageComponent
	var current []discordgo.MessageComponent
	for idx, role := range vm.Roles {
		current = append(current, discordgo.Button{
			Label:    role.Name,
			Style:    discordgo.PrimaryButton,
			CustomID: joinCustomID(groupID, idx),
			Emoji:    &discordgo.ComponentEmoji{Name: role.Emoji},
			Disabled: started || role.Filled >= role.Capacity,
		})
		if len(current) == maxButtonsPerRow {
			rows = append(rows, discordgo.ActionsRow{Components: current})
			current = nil
		}
	}
	if len(current) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: current})
	}

	rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Sair",
			Style:    discordgo.SecondaryButton,
			CustomID: CustomIDLeave + ":" + groupID,
			Disabled: started,
		},
		discordgo.Button{
			Label:    "Editar",
			Style:    discordgo.SecondaryButton,
			CustomID: CustomIDEdit + ":" + groupID,
		},
		discordgo.Button{
			Label:    "Encerrar",
			Style:    discordgo.DangerButton,
			CustomID: CustomIDClose + ":" + groupID,
		},
	}})

	return rows
}

func joinCustomID(groupID string, roleIndex int) string {
	return CustomIDJoin + ":" + groupID + ":" + strconv.Itoa(roleIndex)
}

// ParsedCustomID é o resultado da decomposição de um custom ID do painel.
// Subject é o ID do grupo para ações de botão; para envios de modal
// (editar-modal) é o token da sessão de edição pendente.
type ParsedCustomID struct {
	Action    string
	Subject   string
	RoleIndex int
}

// ParseCustomID decompõe um custom ID emitido por BuildComponents. Retorna
// false para IDs que não pertencem ao painel de grupos.
func ParseCustomID(customID string) (ParsedCustomID, bool) {
	parts := strings.Split(customID, ":")
	if len(parts) < 3 || parts[0] != "grupo" {
		return ParsedCustomID{}, false
	}

	parsed := ParsedCustomID{Action: parts[1], Subject: parts[2], RoleIndex: -1}
	switch parts[1] {
	case "entrar":
		if len(parts) != 4 {
			return ParsedCustomID{}, false
		}
		idx, err := strconv.Atoi(parts[3])
		if err != nil || idx < 0 {
			return ParsedCustomID{}, false
		}
		parsed.RoleIndex = idx
	case "sair", "encerrar", "editar", "editar-modal":
		if len(parts) != 3 {
			return ParsedCustomID{}, false
		}
	default:
		return ParsedCustomID{}, false
	}
	return parsed, true
}
