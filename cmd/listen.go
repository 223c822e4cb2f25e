package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/reveil-sh/reveil/common"
	"github.com/reveil-sh/reveil/pkg/reveilcli"
)

func listen(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := reveilcli.NewClient()
	if err != nil {
		printRuntimeErr(ctx, "listen", "new_client", err)
		return nil
	}
	defer client.Close()

	client.AddHandler(common.NotifyFired, reveilcli.NewFiredHandler(
		func(n *common.FiredNotification) error {
			label := n.Label
			if label == "" {
				label = "(no label)"
			}
			fmt.Printf("%s  ALARM %s  %s\n",
				time.Now().Format("15:04:05"), n.ID, label)
			return nil
		},
	))

	sigCtx, cancel := setupShutdownHandler()
	defer cancel()

	fmt.Println("Listening for alarms, press Ctrl+C to stop...")
	go func() {
		<-sigCtx.Done()
		_ = client.Close()
	}()
	client.Wait()
	return nil
}
