package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/reveil-sh/reveil/pkg/reveilcli"
)

var (
	addAt        string
	addIn        string
	addLabel     string
	addEveryDays int
	addDays      string
	addCron      string

	addFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "at, t",
			Usage:       `absolute wake time, "YYYY-MM-DD HH:MM" in local time`,
			Destination: &addAt,
		},
		cli.StringFlag{
			Name:        "in, i",
			Usage:       "wake after a duration from now, e.g. 8h30m",
			Destination: &addIn,
		},
		cli.StringFlag{
			Name:        "label, l",
			Usage:       "free-form label shown in listings and fire events",
			Destination: &addLabel,
		},
		cli.IntFlag{
			Name:        "every-days, e",
			Usage:       "repeat every N days",
			Destination: &addEveryDays,
		},
		cli.StringFlag{
			Name:        "days, d",
			Usage:       "repeat on weekdays, e.g. mon,tue,fri",
			Destination: &addDays,
		},
		cli.StringFlag{
			Name:        "cron",
			Usage:       `repeat per a 5-field cron expression, e.g. "30 6 * * 1-5"`,
			Destination: &addCron,
		},
	}
)

func add(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	deadline, err := resolveDeadline(addAt, addIn)
	if err != nil {
		return printErrWithCmdHelp(ctx, err)
	}
	repeat, err := buildRepeat(addEveryDays, addDays, addCron)
	if err != nil {
		return printErrWithCmdHelp(ctx, err)
	}
	if repeat == nil && !deadline.After(time.Now()) {
		return printErrWithCmdHelp(ctx,
			fmt.Errorf("error: a one-shot alarm must be in the future"))
	}

	client, err := reveilcli.NewClient()
	if err != nil {
		printRuntimeErr(ctx, "add", "new_client", err)
		return nil
	}
	defer client.Close()

	info, err := client.Create(context.Background(), deadline, &reveilcli.CreateOpts{
		Repeat: repeat,
		Label:  addLabel,
	})
	if err != nil {
		printRuntimeErr(ctx, "add", "create_alarm", err)
		return nil
	}
	fmt.Printf("Added alarm %s for %s\n",
		info.ID,
		time.Unix(info.Deadline, 0).Local().Format(atLayout),
	)
	return nil
}
