package core

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/files"
	"github.com/hevertonluis504-cpu/Albion-bot/pkg/log"
)

// InteractionHandler processa interações que não são comandos slash
// (botões e modais).
type InteractionHandler func(ctx *Context)

// CommandRegistry gerencia o registro de comandos
type CommandRegistry struct {
	commands map[string]Command
	order    []string
}

func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{commands: make(map[string]Command)}
}

// Register registra um comando no registry
func (r *CommandRegistry) Register(cmd Command) {
	if _, exists := r.commands[cmd.Name()]; !exists {
		r.order = append(r.order, cmd.Name())
	}
	r.commands[cmd.Name()] = cmd
}

// GetCommand retorna um comando pelo nome
func (r *CommandRegistry) GetCommand(name string) (Command, bool) {
	cmd, exists := r.commands[name]
	return cmd, exists
}

// Names retorna os nomes dos comandos na ordem de registro
func (r *CommandRegistry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// CommandRouter roteia interações recebidas para os handlers apropriados
type CommandRouter struct {
	registry         *CommandRegistry
	responder        *Responder
	config           *files.ConfigManager
	componentHandler InteractionHandler
	modalHandler     InteractionHandler
}

// NewCommandRouter cria um novo roteador de comandos
func NewCommandRouter(session *discordgo.Session, configManager *files.ConfigManager) *CommandRouter {
	return &CommandRouter{
		registry:  NewCommandRegistry(),
		responder: NewResponder(session),
		config:    configManager,
	}
}

// RegisterCommand registra um comando slash
func (cr *CommandRouter) RegisterCommand(cmd Command) {
	cr.registry.Register(cmd)
}

// RegisterComponentHandler registra o handler de interações de componentes
func (cr *CommandRouter) RegisterComponentHandler(h InteractionHandler) {
	cr.componentHandler = h
}

// RegisterModalHandler registra o handler de envios de modal
func (cr *CommandRouter) RegisterModalHandler(h InteractionHandler) {
	cr.modalHandler = h
}

// HandleInteraction roteia interações para os handlers apropriados
func (cr *CommandRouter) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := cr.buildContext(s, i)

	switch {
	case IsSlashCommandInteraction(i):
		cr.handleSlashCommand(ctx)
	case IsComponentInteraction(i):
		if cr.componentHandler != nil {
			cr.componentHandler(ctx)
		}
	case IsModalSubmitInteraction(i):
		if cr.modalHandler != nil {
			cr.modalHandler(ctx)
		}
	}
}

func (cr *CommandRouter) buildContext(s *discordgo.Session, i *discordgo.InteractionCreate) *Context {
	userID := InteractionUserID(i)
	logger := log.DiscordLogger().With("guild_id", i.GuildID, "user_id", userID)

	return &Context{
		Session:     s,
		Interaction: i,
		Config:      cr.config,
		Logger:      logger,
		GuildID:     i.GuildID,
		ChannelID:   i.ChannelID,
		UserID:      userID,
	}
}

// handleSlashCommand processa comandos slash
func (cr *CommandRouter) handleSlashCommand(ctx *Context) {
	commandName := ctx.Interaction.ApplicationCommandData().Name
	logger := ctx.Logger.With("command", commandName)
	ctx.Logger = logger

	cmd, exists := cr.registry.GetCommand(commandName)
	if !exists {
		logger.Error("Command not found")
		cr.responder.Error(ctx.Interaction, "Comando não encontrado.")
		return
	}

	if cmd.RequiresGuild() && ctx.GuildID == "" {
		logger.Warn("Command used outside of guild")
		cr.responder.Error(ctx.Interaction, "Este comando só pode ser usado em um servidor.")
		return
	}

	logger.Info("Executing command")
	if err := cmd.Handle(ctx); err != nil {
		logger.Error("Command execution failed", "error", err)

		if cmdErr, ok := err.(*CommandError); ok {
			if cmdErr.Ephemeral {
				cr.responder.Ephemeral(ctx.Interaction, cmdErr.Message)
			} else {
				cr.responder.Content(ctx.Interaction, "❌ "+cmdErr.Message)
			}
			return
		}
		cr.responder.Error(ctx.Interaction, "Ocorreu um erro ao executar o comando.")
	}
}

// CommandManager gerencia o ciclo de vida dos comandos no Discord
type CommandManager struct {
	session *discordgo.Session
	router  *CommandRouter
}

// NewCommandManager cria um novo gerenciador de comandos
func NewCommandManager(session *discordgo.Session, configManager *files.ConfigManager) *CommandManager {
	return &CommandManager{
		session: session,
		router:  NewCommandRouter(session, configManager),
	}
}

// Router retorna o roteador de comandos
func (cm *CommandManager) Router() *CommandRouter {
	return cm.router
}

// SetupCommands sincroniza os comandos registrados com o Discord de forma
// incremental: cria os novos, atualiza os alterados e remove os órfãos.
func (cm *CommandManager) SetupCommands() error {
	cm.session.AddHandler(cm.router.HandleInteraction)

	registered, err := cm.session.ApplicationCommands(cm.session.State.User.ID, "")
	if err != nil {
		return fmt.Errorf("failed to fetch registered commands: %w", err)
	}

	regByName := make(map[string]*discordgo.ApplicationCommand, len(registered))
	for _, rc := range registered {
		regByName[rc.Name] = rc
	}

	logger := log.DiscordLogger()
	created, updated, unchanged := 0, 0, 0
	for _, name := range cm.router.registry.Names() {
		cmd, _ := cm.router.registry.GetCommand(name)
		desired := &discordgo.ApplicationCommand{
			Name:        cmd.Name(),
			Description: cmd.Description(),
			Options:     cmd.Options(),
		}

		if existing, ok := regByName[name]; ok {
			if CompareCommands(existing, desired) {
				unchanged++
				continue
			}
			if _, err := cm.session.ApplicationCommandEdit(cm.session.State.User.ID, "", existing.ID, desired); err != nil {
				return fmt.Errorf("error updating command '%s': %w", name, err)
			}
			logger.Info("Command updated", "command", name)
			updated++
		} else {
			if _, err := cm.session.ApplicationCommandCreate(cm.session.State.User.ID, "", desired); err != nil {
				return fmt.Errorf("error creating command '%s': %w", name, err)
			}
			logger.Info("Command created", "command", name)
			created++
		}
	}

	deleted := 0
	for _, rc := range registered {
		if _, exists := cm.router.registry.GetCommand(rc.Name); !exists {
			if err := cm.session.ApplicationCommandDelete(cm.session.State.User.ID, "", rc.ID); err != nil {
				logger.Warn("Error removing orphan command", "command", rc.Name, "error", err)
				continue
			}
			logger.Info("Orphan command removed", "command", rc.Name)
			deleted++
		}
	}

	logger.Info("Command synchronization completed",
		"created", created,
		"updated", updated,
		"deleted", deleted,
		"unchanged", unchanged,
		"total", len(cm.router.registry.Names()),
	)

	return nil
}
