package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/ushinonagisa/mp/nlreader"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// styles holds the color formatters for CLI output.
type styles struct {
	ok         *color.Color
	fail       *color.Color
	sevError   *color.Color
	sevWarning *color.Color
	sevInfo    *color.Color
	path       *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		ok:         color.New(color.Bold, color.FgHiGreen),
		fail:       color.New(color.Bold, color.FgHiRed),
		sevError:   color.New(color.FgRed),
		sevWarning: color.New(color.FgYellow),
		sevInfo:    color.New(color.FgHiBlue),
		path:       color.New(color.Bold),
	}

	if !enabled {
		s.ok.DisableColor()
		s.fail.DisableColor()
		s.sevError.DisableColor()
		s.sevWarning.DisableColor()
		s.sevInfo.DisableColor()
		s.path.DisableColor()
	}

	return s
}

// colorEnabled resolves the --color mode. "auto" colors only a terminal
// stdout with NO_COLOR unset.
func colorEnabled(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("unknown color mode %q (want auto, always or never)", mode)
	}
}

func stylesFor(opts options) (*styles, error) {
	enabled, err := colorEnabled(opts.color)
	if err != nil {
		return nil, err
	}
	return newStyles(enabled), nil
}

// encode writes v to w as YAML or JSON.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q (want yaml or json)", format)
	}
}

func (s *styles) severity(sev nlreader.Severity) *color.Color {
	switch sev {
	case nlreader.Error:
		return s.sevError
	case nlreader.Warning:
		return s.sevWarning
	default:
		return s.sevInfo
	}
}

// printDiagnostics writes one line per lint finding.
func printDiagnostics(w io.Writer, s *styles, source string, diags []nlreader.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s: %s %s: %s", source, s.severity(d.Severity).Sprint(d.Severity), d.Rule, d.Message)
		if d.Fix != "" {
			fmt.Fprintf(w, " (fix: %s)", d.Fix)
		}
		fmt.Fprintln(w)
	}
}

// lockedWriter serializes writes from concurrent reads.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// traceListener returns an event listener that prints reader progress.
func traceListener(w io.Writer, source string) func(nlreader.Event) {
	return func(e nlreader.Event) {
		switch e.Type {
		case nlreader.EventReadStarted:
			fmt.Fprintf(w, "[read] %s\n", source)

		case nlreader.EventHeaderRead:
			vars, _ := e.Data["num_vars"].(int)
			cons, _ := e.Data["num_cons"].(int)
			objs, _ := e.Data["num_objs"].(int)
			format, _ := e.Data["format"].(string)
			fmt.Fprintf(w, "[header] %s: %s, %d vars, %d cons, %d objs\n", source, format, vars, cons, objs)

		case nlreader.EventSegmentStarted:
			index, _ := e.Data["index"].(int)
			tag, _ := e.Data["tag"].(string)
			kind, _ := e.Data["kind"].(string)
			line, _ := e.Data["line"].(int)
			fmt.Fprintf(w, "[segment %d] %s:%d %s %s\n", index+1, source, line, tag, kind)

		case nlreader.EventReadCompleted:
			segments, _ := e.Data["segments"].(int)
			durationMs, _ := e.Data["duration_ms"].(int64)
			duration := time.Duration(durationMs) * time.Millisecond
			fmt.Fprintf(w, "[read] %s: %d segments in %.1fs\n", source, segments, duration.Seconds())

		case nlreader.EventReadFailed:
			state, _ := e.Data["state"].(string)
			errMsg, _ := e.Data["error"].(string)
			fmt.Fprintf(w, "[read] Failed while %s: %s\n", state, errMsg)
		}
	}
}

// newConfig builds a reader config, attaching a trace listener when verbose.
func newConfig(w io.Writer, opts options, source string) *nlreader.Config {
	config := &nlreader.Config{}
	if opts.verbose {
		config.Events = nlreader.NewEventEmitter()
		config.Events.On(traceListener(w, source))
	}
	return config
}
