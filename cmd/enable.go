package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/reveil-sh/reveil/pkg/reveilcli"
)

func enable(ctx *cli.Context) error {
	return setEnabled(ctx, "enable", true)
}

func disable(ctx *cli.Context) error {
	return setEnabled(ctx, "disable", false)
}

func setEnabled(ctx *cli.Context, cmd string, enabled bool) error {
	id := ctx.Args().First()
	if id == "" || id == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := reveilcli.NewClient()
	if err != nil {
		printRuntimeErr(ctx, cmd, "new_client", err)
		return nil
	}
	defer client.Close()

	info, err := client.SetEnabled(context.Background(), id, enabled)
	if err != nil {
		printRuntimeErr(ctx, cmd, "set_enabled", err)
		return nil
	}
	if info.Enabled {
		fmt.Printf("Enabled alarm %s, next wake %s\n",
			info.ID, time.Unix(info.Deadline, 0).Local().Format(atLayout))
	} else {
		fmt.Printf("Disabled alarm %s\n", info.ID)
	}
	return nil
}
