package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/reveil-sh/reveil/common"
	"github.com/reveil-sh/reveil/pkg/reveilcli"
)

func list(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	client, err := reveilcli.NewClient()
	if err != nil {
		printRuntimeErr(ctx, "list", "new_client", err)
		return nil
	}
	defer client.Close()

	l, err := client.List(context.Background())
	if err != nil {
		printRuntimeErr(ctx, "list", "get_list", err)
		return nil
	}
	if len(l.Alarms) == 0 {
		fmt.Println("reveil: no alarms configured")
		return nil
	}
	txt := "Here are your alarms:"
	txt += "\n\n--------------------------------------------------------------------------------------------------"
	txt += "\n|Num|    Next wake     |     Repeat      |        Label         |                 Id                  | State |"
	txt += "\n|---|------------------|-----------------|----------------------|-------------------------------------|-------|"
	for i, a := range l.Alarms {
		state := "  on "
		if !a.Enabled {
			state = " off "
		}
		txt += fmt.Sprintf("\n| %d | %s | %s | %s | %s |%s|",
			i+1,
			time.Unix(a.Deadline, 0).Local().Format(atLayout),
			beaut(repeatLabel(&a), 15),
			beaut(clip(a.Label, 20), 20),
			a.ID,
			state,
		)
	}
	txt += "\n--------------------------------------------------------------------------------------------------"
	fmt.Println(txt)
	return nil
}

func repeatLabel(a *common.AlarmInfo) string {
	if a.Repeat == nil {
		return "once"
	}
	return clip(a.Repeat.String(), 15)
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

func beaut(s string, n int) (b string) {
	n1 := len(s)
	x := n - n1
	if x <= 0 {
		return s
	}
	x1 := x / 2
	w := string(
		replic(' ', x1),
	)
	b = w
	b += s
	b += w
	if x%2 != 0 {
		b += " "
	}
	return
}

func replic[aT any](v aT, n int) []aT {
	a := make([]aT, n)
	for i := range a {
		a[i] = v
	}
	return a
}
