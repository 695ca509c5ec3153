package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a summary of the stored resume",
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	sess, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.close() //nolint:errcheck
	sess.warnNotice(cmd.ErrOrStderr())

	observability.NewPrinter(cmd.OutOrStdout()).PrintRecordSummary(sess.ctrl.Snapshot())
	return nil
}
