package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"desksweep/internal/adapters/sqlite"
	"desksweep/internal/application/commands"
	"desksweep/internal/domain"
	"desksweep/internal/suggest"
)

var reportCmd = &cobra.Command{
	Use:   "report [location]",
	Short: "Report the clutter hiding in a folder",
	Long: `Sweep a folder in one pass and report what an interactive session
would surface: duplicate groups, similar-name groups, creation bursts,
and the old, large and temporary files.

Examples:
  desksweep-cli report
  desksweep-cli report ~/Downloads`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc := GetConfig().Location
		if len(args) == 1 {
			loc = args[0]
		}

		reportCmd := commands.NewReportCommand(GetSource(), sqlite.NewIndex(), GetConfig(), loc)
		res, err := reportCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d files, %s\n", res.Location, res.Total, suggest.FormatBytes(res.TotalBytes))

		if len(res.Groups) > 0 {
			fmt.Println("\nGroups:")
			for _, g := range res.Groups {
				fmt.Printf("  %s\n", g.Label)
				for _, m := range g.Members {
					fmt.Printf("    %s  %s\n", m.Name, suggest.FormatBytes(m.Size))
				}
			}
		}
		printSection("Old files", res.Old)
		printSection("Large files", res.Large)
		printSection("Temporary files", res.Temporary)

		if len(res.Groups) == 0 && len(res.Old) == 0 && len(res.Large) == 0 && len(res.Temporary) == 0 {
			fmt.Println("\nNothing worth flagging.")
		}
		return nil
	},
}

func printSection(title string, files []domain.FileRecord) {
	if len(files) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for _, rec := range files {
		fmt.Printf("  %s  %s\n", rec.Name, suggest.FormatBytes(rec.Size))
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
