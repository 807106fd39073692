// Package sweep mantém os painéis de grupo atualizados fora do ciclo de
// interação: recalcula o status de cada grupo em intervalos fixos, emite o
// aviso único de "começando em breve" e reescreve os embeds.
package sweep

import (
	"context"
	"time"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/group"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/log"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/task"
)

// Presenter é a superfície do Discord que o varredor precisa: reescrever o
// painel de um grupo e anunciar a proximidade do início.
type Presenter interface {
	UpdatePanel(g *group.Group, now time.Time) error
	AnnounceStartingSoon(g *group.Group) error
}

// Sweeper percorre os grupos periodicamente e propaga mudanças de status.
type Sweeper struct {
	store     *group.Store
	presenter Presenter
	interval  time.Duration
	cancel    task.Cancel
}

// New cria um novo varredor com o intervalo dado.
func New(store *group.Store, presenter Presenter, interval time.Duration) *Sweeper {
	return &Sweeper{
		store:     store,
		presenter: presenter,
		interval:  interval,
	}
}

// Start agenda a varredura periódica até o contexto terminar.
func (s *Sweeper) Start(ctx context.Context) {
	s.cancel = task.ScheduleEvery(ctx, s.interval, task.Task{
		Name: "group-sweep",
		Fn:   s.SweepOnce,
	})
	log.ApplicationLogger().Info("Sweeper started", "interval", s.interval.String())
}

// Stop cancela a varredura periódica.
func (s *Sweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// SweepOnce percorre um snapshot dos grupos. Falhas são isoladas por grupo:
// um painel inacessível não impede a varredura dos demais.
func (s *Sweeper) SweepOnce(now time.Time) {
	logger := log.ApplicationLogger()
	for _, g := range s.store.Snapshots() {
		if g.Closed {
			continue
		}

		current := g
		if pinged, ok := s.store.ClaimStartingSoonPing(g.ID, now); ok {
			current = pinged
			if err := s.presenter.AnnounceStartingSoon(pinged); err != nil {
				logger.Error("Starting-soon announcement failed", "group_id", g.ID, "error", err)
			}
		}

		if err := s.presenter.UpdatePanel(current, now); err != nil {
			logger.Error("Panel refresh failed", "group_id", g.ID, "error", err)
		}
	}
}
