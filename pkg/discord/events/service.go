package events

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/discord/render"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/group"
)

// PanelService atualiza os painéis de grupo fora do ciclo de interação,
// usado pelo varredor periódico.
type PanelService struct {
	session *discordgo.Session
}

// NewPanelService cria um novo serviço de painéis
func NewPanelService(session *discordgo.Session) *PanelService {
	return &PanelService{session: session}
}

// UpdatePanel reescreve o embed e os botões da mensagem do grupo.
func (s *PanelService) UpdatePanel(g *group.Group, now time.Time) error {
	vm := group.Project(g, now)
	components := render.BuildComponents(g.ID, vm)
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	_, err := s.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    g.ChannelID,
		ID:         g.ID,
		Embeds:     &[]*discordgo.MessageEmbed{render.BuildEmbed(vm)},
		Components: &components,
	})
	if err != nil {
		return fmt.Errorf("failed to update panel %s: %w", g.ID, err)
	}
	return nil
}

// AnnounceStartingSoon avisa no canal do grupo que o evento está próximo.
func (s *PanelService) AnnounceStartingSoon(g *group.Group) error {
	content := fmt.Sprintf("@here ⏰ **%s** começa <t:%d:R>! Últimas vagas no painel acima.",
		g.Title, g.StartTime.Unix())
	if _, err := s.session.ChannelMessageSend(g.ChannelID, content); err != nil {
		return fmt.Errorf("failed to announce group %s: %w", g.ID, err)
	}
	return nil
}
