package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"desksweep/internal/adapters/sqlite"
	"desksweep/internal/application/commands"
)

var planCmd = &cobra.Command{
	Use:   "plan [location]",
	Short: "Print the bulk cleanup actions a session would offer",
	Long: `Sweep a folder, group the related files, and print the smart
actions a group review would propose for each group. Nothing is moved
or deleted.

Examples:
  desksweep-cli plan
  desksweep-cli plan ~/Downloads`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc := GetConfig().Location
		if len(args) == 1 {
			loc = args[0]
		}

		planCmd := commands.NewPlanCommand(GetSource(), sqlite.NewIndex(), GetConfig(), loc)
		res, err := planCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		if len(res.Groups) == 0 {
			fmt.Printf("%s: no groups to plan for.\n", res.Location)
			return nil
		}
		fmt.Printf("%s:\n", res.Location)
		for _, pg := range res.Groups {
			fmt.Printf("\n%s\n", pg.Group.Label)
			if len(pg.Actions) == 0 {
				fmt.Println("  (no derived actions; review by hand)")
				continue
			}
			for i, a := range pg.Actions {
				fmt.Printf("  %d. %s", i+1, a.Label)
				if len(a.Keep) > 0 || len(a.Bin) > 0 {
					fmt.Printf(" (keep %d, bin %d)", len(a.Keep), len(a.Bin))
				}
				fmt.Println()
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
