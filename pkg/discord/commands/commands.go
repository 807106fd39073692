// Package commands reúne os comandos slash do bot e o seu registro no
// roteador de interações.
package commands

import (
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/discord/commands/core"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/group"
)

// RegisterAll registra todos os comandos slash no roteador.
func RegisterAll(router *core.CommandRouter, store *group.Store) {
	router.RegisterCommand(NewCriarCommand(store))
	router.RegisterCommand(NewDivisaoCommand())
	router.RegisterCommand(NewCanalCommand())
}
