package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"desksweep/internal/application"
	"desksweep/internal/config"
	"desksweep/internal/suggest"
)

var scanCmd = &cobra.Command{
	Use:   "scan [location]",
	Short: "List the files a sweep would triage",
	Long: `Enumerate a folder the way a triage session does and print every
file that would enter the working list, in triage order.

Examples:
  desksweep-cli scan
  desksweep-cli scan ~/Downloads`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc := GetConfig().Location
		if len(args) == 1 {
			loc = args[0]
		}
		loc = config.ExpandPath(loc)

		files, err := GetSource().Enumerate(loc)
		if err != nil {
			return &application.ScanError{Location: loc, Err: err}
		}

		var total int64
		for _, rec := range files {
			fmt.Printf("%-10s %10s  %s\n", rec.Type, suggest.FormatBytes(rec.Size), rec.Name)
			total += rec.Size
		}
		fmt.Printf("\n%d files, %s\n", len(files), suggest.FormatBytes(total))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
