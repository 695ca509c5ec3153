package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/storage"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the stored resume record as JSON or YAML",
	RunE:  runDump,
}

var (
	dumpFormat     string
	dumpOutputFile string
)

func init() {
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "json", "Output format: json or yaml")
	dumpCmd.Flags().StringVarP(&dumpOutputFile, "out", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, _ []string) error {
	sess, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.close() //nolint:errcheck
	sess.warnNotice(cmd.ErrOrStderr())

	rec := sess.ctrl.Snapshot()
	var data []byte
	switch dumpFormat {
	case "json":
		data, err = storage.Encode(rec)
	case "yaml", "yml":
		data, err = storage.EncodeYAML(rec)
	default:
		return fmt.Errorf("unknown format %q (expected json or yaml)", dumpFormat)
	}
	if err != nil {
		return err
	}

	if dumpOutputFile == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(dumpOutputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
