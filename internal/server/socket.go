package server

import (
	"os"
	"path/filepath"

	"github.com/reveil-sh/reveil/common"
)

// SocketPath returns the unix socket the daemon listens on: the
// REVEIL_SOCKET_PATH override if set, else reveil.sock in the temp dir.
func SocketPath() string {
	if path := os.Getenv(common.SocketPathEnv); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), "reveil.sock")
}
