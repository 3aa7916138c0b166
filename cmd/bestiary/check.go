package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/udisondev/bestiary/internal/creature"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compile all creature definitions and report problems",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "fail when any record is skipped")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	report, err := a.load()
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), report, a.shared.Len())

	if checkStrict && len(report.Skipped) > 0 {
		return fmt.Errorf("%d creature records skipped", len(report.Skipped))
	}
	return nil
}

func printReport(w io.Writer, report creature.LoadReport, shared int) {
	fmt.Fprintf(w, "shared abilities: %d\n", shared)
	fmt.Fprintf(w, "creatures loaded: %d\n", report.Loaded)
	fmt.Fprintf(w, "abilities dropped: %d\n", report.AbilityErrors)
	fmt.Fprintf(w, "records skipped: %d\n", len(report.Skipped))

	if len(report.Skipped) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tERROR")
	for _, s := range report.Skipped {
		fmt.Fprintf(tw, "%s\t%v\n", s.Name, s.Err)
	}
	tw.Flush()
}
