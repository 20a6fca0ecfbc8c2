package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/ushinonagisa/mp/nlreader"
)

var segmentsCmd = &cobra.Command{
	Use:   "segments <problem.nl>",
	Short: "List the segments of an .nl file",
	Long:  "Walk every segment of a text .nl file and print its tag, position and arguments.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSegments,
}

func init() {
	rootCmd.AddCommand(segmentsCmd)
}

// segmentSummary is the printed form of one segment.
type segmentSummary struct {
	Tag       string  `yaml:"tag" json:"tag"`
	Kind      string  `yaml:"kind" json:"kind"`
	Line      int     `yaml:"line" json:"line"`
	Args      []int   `yaml:"args,omitempty,flow" json:"args,omitempty"`
	Name      string  `yaml:"name,omitempty" json:"name,omitempty"`
	Value     float64 `yaml:"value,omitempty" json:"value,omitempty"`
	BodyLines int     `yaml:"body_lines" json:"body_lines"`
}

func summarize(seg nlreader.Segment) segmentSummary {
	return segmentSummary{
		Tag:       string(rune(seg.Kind)),
		Kind:      seg.Kind.String(),
		Line:      seg.Pos.Line,
		Args:      seg.Args,
		Name:      seg.Name,
		Value:     seg.Value,
		BodyLines: seg.BodyLines,
	}
}

func runSegments(cmd *cobra.Command, args []string) error {
	return writeSegments(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], loadOptions())
}

func writeSegments(out, errOut io.Writer, path string, opts options) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading problem file: %w", err)
	}

	var segments []segmentSummary
	handler := nlreader.HandlerFuncs{SegmentFunc: func(seg nlreader.Segment, _ *nlreader.Tokenizer) error {
		segments = append(segments, summarize(seg))
		return nil
	}}
	if err := nlreader.NewReader(handler, newConfig(errOut, opts, path)).ReadBytes(path, src); err != nil {
		return fmt.Errorf("parsing problem: %w", err)
	}

	if segments == nil {
		segments = []segmentSummary{}
	}
	return encode(out, opts.format, segments)
}
