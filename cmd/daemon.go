package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/reveil-sh/reveil/common"
	"github.com/reveil-sh/reveil/internal/daemon"
	"github.com/reveil-sh/reveil/pkg/alarm"
	"github.com/reveil-sh/reveil/pkg/logger"
)

var (
	configPath string
	logFile    string

	daemonFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "config, c",
			Usage:       "path to the daemon config file",
			Destination: &configPath,
		},
		cli.StringFlag{
			Name:        "log-file",
			Usage:       "also write daemon logs to this file",
			Destination: &logFile,
		},
	}
)

func runDaemon(ctx *cli.Context) error {
	cfg, err := daemon.LoadConfig(configPath)
	if err != nil {
		printRuntimeErr(ctx, "daemon", "load_config", err)
		return nil
	}

	l, closeLog, err := buildDaemonLogger(logFile)
	if err != nil {
		printRuntimeErr(ctx, "daemon", "log_file", err)
		return nil
	}
	defer closeLog()

	if err := WritePidFile(); err != nil {
		printRuntimeErr(ctx, "daemon", "pid_file", err)
		return nil
	}
	defer func() { _ = RemovePidFile() }()

	runCtx, cancel := setupShutdownHandler()
	defer cancel()

	d := daemon.New(l, cfg, common.VersionResult{
		Version:   buildInfo.Version,
		Commit:    buildInfo.Commit,
		BuildType: buildInfo.BuildType,
	})
	if err := d.Run(runCtx); err != nil {
		printRuntimeErr(ctx, "daemon", "run", err)
	}
	return nil
}

// buildDaemonLogger returns a console logger, fanned out to a log file when
// one is configured.
func buildDaemonLogger(path string) (logger.Logger, func(), error) {
	console := logger.NewStandardLogger(log.New(os.Stderr, "", log.LstdFlags))
	if path == "" {
		return console, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	file := logger.NewStandardLogger(log.New(f, "", log.LstdFlags))
	multi := logger.NewMultiLogger(console, file)
	return multi, func() { _ = f.Close() }, nil
}

// stateDir returns the directory holding the alarm DB and the pid file.
func stateDir() string {
	return filepath.Dir(alarm.DefaultStateFile())
}
