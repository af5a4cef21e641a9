package cmd

import (
	"fmt"
	"os"

	"github.com/canopener/canopener/pkg/cgen"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var ErrOutOfDate = errors.New("header is out of date")

func newCheckCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <eds-or-dcf> <existing.h>",
		Short: "Check if a generated header is up to date",
		Long: `Check if an existing header matches the one generated from
the given EDS or DCF file. The generation date is ignored.

Exit codes:
  0 - Header is up to date
  1 - Header is out of date, or an error occurred`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runCheck(cmd, args[0], args[1])
		},
	}
}

func (opts *options) runCheck(cmd *cobra.Command, sourcePath string, headerPath string) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	expected, err := opts.render(cfg, sourcePath)
	if err != nil {
		return err
	}
	existing, err := os.ReadFile(headerPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", headerPath)
	}

	out := cmd.OutOrStdout()
	if cgen.Equivalent(existing, expected) {
		fmt.Fprintf(out, "%s is up to date\n", headerPath)
		return nil
	}
	line := cgen.FirstDifference(existing, expected)
	fmt.Fprintf(out, "%s is out of date (first difference on line %d)\n", headerPath, line)
	return errors.WithHintf(
		errors.Wrapf(ErrOutOfDate, "%s", headerPath),
		"run 'canopener %s %s' to update it", sourcePath, headerPath,
	)
}
