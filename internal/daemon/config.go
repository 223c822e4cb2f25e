package daemon

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/reveil-sh/reveil/common"
	"github.com/reveil-sh/reveil/internal/rtc"
	"github.com/reveil-sh/reveil/pkg/alarm"
)

// Config holds the daemon configuration, loaded from an optional YAML file
// with environment-variable overrides.
type Config struct {
	// SocketPath is the unix socket clients connect to.
	SocketPath string `yaml:"socket_path"`

	// StateFile is the alarm DB path.
	StateFile string `yaml:"state_file"`

	// RTCDevice is the RTC name under /sys/class/rtc and /dev, e.g. "rtc0".
	RTCDevice string `yaml:"rtc_device"`

	// HTTPAddr enables the HTTP/WebSocket bridge when non-empty.
	HTTPAddr string `yaml:"http_addr"`

	// HTTPSecret is the Bearer token required by the HTTP bridge.
	HTTPSecret string `yaml:"http_secret"`
}

// LoadConfig resolves the effective configuration: defaults, then the YAML
// file (explicit path, $REVEIL_CONFIG, or the user config dir), then env
// overrides. A missing config file is fine; an unreadable one is an error.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		StateFile: alarm.DefaultStateFile(),
		RTCDevice: rtc.DefaultDevice,
	}

	explicit := path != ""
	if path == "" {
		path = os.Getenv(common.ConfigEnv)
		explicit = path != ""
	}
	if path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "reveil", "config.yml")
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		case os.IsNotExist(err) && !explicit:
			// No config file is the common case.
		default:
			return cfg, err
		}
	}

	if v := os.Getenv(common.SocketPathEnv); v != "" {
		cfg.SocketPath = v
	}
	if v := os.Getenv(common.StateFileEnv); v != "" {
		cfg.StateFile = v
	}
	if v := os.Getenv(common.RTCDeviceEnv); v != "" {
		cfg.RTCDevice = v
	}
	if v := os.Getenv(common.HTTPAddrEnv); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv(common.HTTPSecretEnv); v != "" {
		cfg.HTTPSecret = v
	}
	return cfg, nil
}
