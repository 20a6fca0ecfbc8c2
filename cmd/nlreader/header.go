package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ushinonagisa/mp/nlreader"
)

var headerCmd = &cobra.Command{
	Use:   "header <problem.nl>",
	Short: "Print the header of an .nl file",
	Long:  "Read only the header of an .nl file and print every field as YAML or JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runHeader,
}

func init() {
	rootCmd.AddCommand(headerCmd)
}

func runHeader(cmd *cobra.Command, args []string) error {
	return writeHeader(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], loadOptions())
}

func writeHeader(out, errOut io.Writer, path string, opts options) error {
	s, err := stylesFor(opts)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading problem file: %w", err)
	}

	var header nlreader.Header
	config := newConfig(errOut, opts, path)
	config.HeaderOnly = true
	handler := nlreader.HandlerFuncs{HeaderFunc: func(h nlreader.Header) error {
		header = h
		return nil
	}}
	if err := nlreader.NewReader(handler, config).ReadBytes(path, src); err != nil {
		return fmt.Errorf("parsing header: %w", err)
	}

	if err := encode(out, opts.format, header); err != nil {
		return err
	}

	if opts.lint {
		diags, err := nlreader.ValidateOrError(header)
		printDiagnostics(errOut, s, path, diags)
		if err != nil {
			return fmt.Errorf("%s: header is inconsistent", path)
		}
	}
	return nil
}
