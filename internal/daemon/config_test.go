package daemon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reveil-sh/reveil/internal/rtc"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("REVEIL_CONFIG", "")
	t.Setenv("REVEIL_STATE_FILE", "")
	t.Setenv("REVEIL_RTC_DEVICE", "")
	// Point the user config dir somewhere empty.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.RTCDevice != rtc.DefaultDevice {
		t.Errorf("RTCDevice = %q, want %q", cfg.RTCDevice, rtc.DefaultDevice)
	}
	if cfg.StateFile == "" {
		t.Error("StateFile default is empty")
	}
	if cfg.HTTPAddr != "" {
		t.Errorf("HTTPAddr = %q, want disabled by default", cfg.HTTPAddr)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `socket_path: /run/reveil.sock
state_file: /var/lib/reveil/alarms.json
rtc_device: rtc1
http_addr: 127.0.0.1:8337
http_secret: hunter2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REVEIL_SOCKET_PATH", "")
	t.Setenv("REVEIL_STATE_FILE", "")
	t.Setenv("REVEIL_RTC_DEVICE", "")
	t.Setenv("REVEIL_HTTP_ADDR", "")
	t.Setenv("REVEIL_HTTP_SECRET", "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.SocketPath != "/run/reveil.sock" ||
		cfg.StateFile != "/var/lib/reveil/alarms.json" ||
		cfg.RTCDevice != "rtc1" ||
		cfg.HTTPAddr != "127.0.0.1:8337" ||
		cfg.HTTPSecret != "hunter2" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("rtc_device: rtc1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REVEIL_RTC_DEVICE", "rtc9")
	t.Setenv("REVEIL_SOCKET_PATH", "/tmp/override.sock")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.RTCDevice != "rtc9" {
		t.Errorf("RTCDevice = %q, env override lost", cfg.RTCDevice)
	}
	if cfg.SocketPath != "/tmp/override.sock" {
		t.Errorf("SocketPath = %q, env override lost", cfg.SocketPath)
	}
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err == nil {
		t.Fatal("explicitly named missing config did not error")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("socket_path: [oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("malformed YAML did not error")
	}
}
