// Package task fornece agendamento periódico em memória com isolamento de
// pânico, usado pelos trabalhos de fundo do bot.
package task

import (
	"context"
	"time"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/log"
)

// Task encapsula um trabalho periódico nomeado.
type Task struct {
	Name string
	Fn   func(now time.Time)
}

// Cancel é uma função que cancela um trabalho agendado.
type Cancel func()

// ScheduleEvery executa a tarefa a cada intervalo até o cancelamento ou o
// término do contexto. Cada execução é isolada: um pânico é registrado e não
// derruba o agendador.
func ScheduleEvery(ctx context.Context, interval time.Duration, t Task) Cancel {
	if interval <= 0 {
		interval = time.Second
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case now := <-ticker.C:
				run(t, now)
			}
		}
	}()

	var cancelled bool
	return func() {
		if !cancelled {
			cancelled = true
			close(done)
		}
	}
}

func run(t Task, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorLogger().Error("Scheduled task panicked", "task", t.Name, "panic", r)
		}
	}()
	t.Fn(now)
}
