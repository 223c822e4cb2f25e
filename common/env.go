// Package common provides shared constants and wire types used across the
// reveil client-server communication layer.
package common

// Environment variable names for configuration.
const (
	// ConfigEnv is the environment variable for a custom config file path.
	ConfigEnv = "REVEIL_CONFIG"

	// SocketPathEnv is the environment variable for a custom socket path.
	SocketPathEnv = "REVEIL_SOCKET_PATH"

	// StateFileEnv is the environment variable for a custom alarm DB path.
	StateFileEnv = "REVEIL_STATE_FILE"

	// RTCDeviceEnv is the environment variable for a custom RTC device name.
	RTCDeviceEnv = "REVEIL_RTC_DEVICE"

	// HTTPAddrEnv is the environment variable for the optional HTTP bridge
	// listen address.
	HTTPAddrEnv = "REVEIL_HTTP_ADDR"

	// HTTPSecretEnv is the environment variable for the HTTP bridge token.
	HTTPSecretEnv = "REVEIL_HTTP_SECRET"
)
