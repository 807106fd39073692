package util

import "path/filepath"

// DataDir resolves the directory used for durable bot state (database,
// settings, logs). ALBION_DATA_DIR overrides the default "./data".
func DataDir() string {
	return EnvOr("ALBION_DATA_DIR", "data")
}

// GroupDBPath is the SQLite database holding group snapshots.
// ALBION_DB_PATH overrides the default location inside DataDir.
func GroupDBPath() string {
	return EnvOr("ALBION_DB_PATH", filepath.Join(DataDir(), "groups.db"))
}

// SettingsPath is the JSON settings file. ALBION_CONFIG_PATH overrides it.
func SettingsPath() string {
	return EnvOr("ALBION_CONFIG_PATH", filepath.Join(DataDir(), "settings.json"))
}

// LogsDir is where rotating log files are written.
func LogsDir() string {
	return filepath.Join(DataDir(), "logs")
}
