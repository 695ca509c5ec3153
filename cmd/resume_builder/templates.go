package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/templates"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List templates or switch the active one",
	RunE:  runTemplates,
}

var templatesSet string

func init() {
	templatesCmd.Flags().StringVar(&templatesSet, "set", "", "Switch to this template id (legacy ids are migrated)")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	sess, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.close() //nolint:errcheck

	if templatesSet != "" {
		id, err := sess.ctrl.SetTemplate(cmd.Context(), templatesSet)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Template set to %s\n", id)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintTemplates(templates.List(), sess.ctrl.Template().ID)
	return nil
}
