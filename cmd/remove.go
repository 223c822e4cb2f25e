package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/reveil-sh/reveil/pkg/reveilcli"
)

func remove(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" || id == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := reveilcli.NewClient()
	if err != nil {
		printRuntimeErr(ctx, "remove", "new_client", err)
		return nil
	}
	defer client.Close()

	if err := client.Remove(context.Background(), id); err != nil {
		printRuntimeErr(ctx, "remove", "remove_alarm", err)
		return nil
	}
	fmt.Printf("Removed alarm %s\n", id)
	return nil
}
