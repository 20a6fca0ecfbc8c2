package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/ushinonagisa/mp/nlreader"
	"golang.org/x/sync/errgroup"
)

var checkCmd = &cobra.Command{
	Use:   "check <problem.nl>...",
	Short: "Check that .nl files read cleanly",
	Long:  "Read each .nl file in full, concurrently, and report which ones fail to parse.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkResult is the outcome of reading one file.
type checkResult struct {
	path        string
	segments    int
	err         error
	diagnostics []nlreader.Diagnostic
}

func (r checkResult) failed() bool {
	if r.err != nil {
		return true
	}
	for _, d := range r.diagnostics {
		if d.Severity == nlreader.Error {
			return true
		}
	}
	return false
}

func runCheck(cmd *cobra.Command, args []string) error {
	return checkFiles(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, loadOptions())
}

func checkFiles(ctx context.Context, out, errOut io.Writer, paths []string, opts options) error {
	s, err := stylesFor(opts)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	trace := &lockedWriter{w: errOut}
	results := make([]checkResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(runtime.NumCPU(), 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = checkFile(path, newConfig(trace, opts, path), opts.lint)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failures := 0
	for _, r := range results {
		if r.failed() {
			failures++
		}
		printResult(out, s, r)
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d files failed", failures, len(paths))
	}
	return nil
}

func checkFile(path string, config *nlreader.Config, lint bool) checkResult {
	result := checkResult{path: path}

	src, err := os.ReadFile(path)
	if err != nil {
		result.err = fmt.Errorf("reading problem file: %w", err)
		return result
	}

	var header nlreader.Header
	handler := nlreader.HandlerFuncs{
		HeaderFunc: func(h nlreader.Header) error {
			header = h
			return nil
		},
		SegmentFunc: func(nlreader.Segment, *nlreader.Tokenizer) error {
			result.segments++
			return nil
		},
	}
	if err := nlreader.NewReader(handler, config).ReadBytes(path, src); err != nil {
		result.err = err
		return result
	}
	if lint {
		result.diagnostics = nlreader.ValidateHeader(header)
	}
	return result
}

func printResult(w io.Writer, s *styles, r checkResult) {
	if r.err != nil {
		fmt.Fprintf(w, "%s %s\n", s.fail.Sprint("FAIL"), r.err)
		return
	}
	status := s.ok.Sprint("ok  ")
	if r.failed() {
		status = s.fail.Sprint("FAIL")
	}
	fmt.Fprintf(w, "%s %s (%d segments)\n", status, s.path.Sprint(r.path), r.segments)
	printDiagnostics(w, s, r.path, r.diagnostics)
}
