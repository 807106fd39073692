package files

import (
	"sync"
	"time"

	"github.com/hevertonluis504-cpu/Albion-bot/pkg/util"
)

// DefaultSweepInterval is how often the background sweep re-evaluates every
// stored group when the settings file does not override it.
const DefaultSweepInterval = 30 * time.Second

// GuildConfig holds per-guild settings.
type GuildConfig struct {
	GuildID        string `json:"guild_id"`
	EventChannelID string `json:"event_channel_id,omitempty"` // canal padrão para avisos de eventos
}

// BotConfig holds the configuration for the bot.
type BotConfig struct {
	Guilds               []GuildConfig `json:"guilds"`
	SweepIntervalSeconds int           `json:"sweep_interval_seconds,omitempty"`
}

// ConfigManager handles bot configuration management on top of a JSON file.
type ConfigManager struct {
	mu          sync.RWMutex
	config      *BotConfig
	jsonManager *util.JSONManager
}

// NewConfigManager creates a manager bound to the given settings file.
func NewConfigManager(path string) *ConfigManager {
	return &ConfigManager{
		config:      &BotConfig{},
		jsonManager: util.NewJSONManager(path),
	}
}

// LoadConfig reads the settings file. A missing file leaves defaults in place.
func (mgr *ConfigManager) LoadConfig() error {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	return mgr.jsonManager.Load(mgr.config)
}

// SaveConfig writes the current settings to disk.
func (mgr *ConfigManager) SaveConfig() error {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	return mgr.jsonManager.Save(mgr.config)
}

// GuildConfig returns the settings for a guild, or nil when unconfigured.
func (mgr *ConfigManager) GuildConfig(guildID string) *GuildConfig {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	for i := range mgr.config.Guilds {
		if mgr.config.Guilds[i].GuildID == guildID {
			cfg := mgr.config.Guilds[i]
			return &cfg
		}
	}
	return nil
}

// SetEventChannel records the announcement channel for a guild and persists.
func (mgr *ConfigManager) SetEventChannel(guildID, channelID string) error {
	mgr.mu.Lock()
	for i := range mgr.config.Guilds {
		if mgr.config.Guilds[i].GuildID == guildID {
			mgr.config.Guilds[i].EventChannelID = channelID
			mgr.mu.Unlock()
			return mgr.SaveConfig()
		}
	}
	mgr.config.Guilds = append(mgr.config.Guilds, GuildConfig{
		GuildID:        guildID,
		EventChannelID: channelID,
	})
	mgr.mu.Unlock()
	return mgr.SaveConfig()
}

// SweepInterval returns the configured sweep cadence, clamped to a sane
// minimum so a typo in the settings file cannot hammer the Discord API.
func (mgr *ConfigManager) SweepInterval() time.Duration {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	if mgr.config.SweepIntervalSeconds <= 0 {
		return DefaultSweepInterval
	}
	interval := time.Duration(mgr.config.SweepIntervalSeconds) * time.Second
	if interval < 10*time.Second {
		return 10 * time.Second
	}
	return interval
}
