package alarm

import (
	"os"
	"path/filepath"
)

// StateDirEnv is the environment variable name used to override the default
// state directory.
const StateDirEnv = "REVEIL_STATE_DIR"

// StateFileName is the name of the alarm DB inside the state directory.
const StateFileName = "alarms.json"

// DefaultStateDir returns the per-user directory holding the alarm DB:
// $REVEIL_STATE_DIR, else $XDG_STATE_HOME/reveil, else ~/.local/state/reveil.
func DefaultStateDir() string {
	if dir := os.Getenv(StateDirEnv); dir != "" {
		return dir
	}
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "reveil")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Out of options; a relative path still works for the daemon.
		return "reveil"
	}
	return filepath.Join(home, ".local", "state", "reveil")
}

// DefaultStateFile returns the default alarm DB path.
func DefaultStateFile() string {
	return filepath.Join(DefaultStateDir(), StateFileName)
}
