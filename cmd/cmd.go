// Package cmd implements the reveil command-line interface: the daemon
// runner plus the client subcommands that talk to it over the unix socket.
package cmd

import (
	"fmt"

	"github.com/urfave/cli"
)

// BuildArgs carries version metadata injected at link time.
type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

var buildInfo BuildArgs

func Execute(args []string, bArgs BuildArgs) error {
	buildInfo = bArgs
	app := cli.App{
		Name:                  "reveil",
		HelpName:              "reveil",
		Usage:                 "An RTC-backed alarm clock daemon.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "reveil <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          usageErrorCallback,
		Commands: []cli.Command{
			{
				Name:               "daemon",
				Usage:              "run the alarm daemon in the foreground",
				Action:             runDaemon,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        DaemonDescription,
				Flags:              daemonFlags,
			},
			{
				Name:   "stop",
				Usage:  "stop a running daemon",
				Action: stopDaemon,
			},
			{
				Name:                   "add",
				Aliases:                []string{"a"},
				Usage:                  "add a new alarm",
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				OnUsageError:           usageErrorCallback,
				Action:                 add,
				Flags:                  addFlags,
				UseShortOptionHandling: true,
				Description:            AddDescription,
			},
			{
				Name:               "remove",
				Aliases:            []string{"rm"},
				Usage:              "remove an alarm by id",
				Action:             remove,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        RemoveDescription,
			},
			{
				Name:               "enable",
				Usage:              "enable an alarm by id",
				Action:             enable,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        EnableDescription,
			},
			{
				Name:               "disable",
				Usage:              "disable an alarm by id",
				Action:             disable,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        EnableDescription,
			},
			{
				Name:                   "list",
				Aliases:                []string{"l"},
				Usage:                  "display configured alarms",
				Action:                 list,
				OnUsageError:           usageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            ListDescription,
				UseShortOptionHandling: true,
			},
			{
				Name:               "listen",
				Usage:              "print alarms as they fire",
				Action:             listen,
				OnUsageError:       usageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        ListenDescription,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of reveil",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             getVersion,
			},
		},
		Action:      list,
		HideHelp:    true,
		HideVersion: true,
	}
	return app.Run(args)
}
