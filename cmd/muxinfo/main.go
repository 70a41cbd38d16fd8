// Command muxinfo lists the container formats, devices and codecs an ffmpeg
// build supports.
//
// Capabilities come from running ffmpeg's listing options or from a YAML
// snapshot (--catalog). Diagnostics go to stderr and, with --report or
// MUXINFO_REPORT, to a report file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the command line argv (including the program name) and
// returns the exit code.
func run(argv []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(argv, stdout, stderr)
	root := a.rootCmd()
	root.SetArgs(argv[1:])
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		// Once the logger exists, errors go through it so the report
		// records them too.
		if a.log != nil {
			a.log.Error("muxinfo: %v", err)
		} else {
			fmt.Fprintf(stderr, "muxinfo: %v\n", err)
		}
		return 1
	}
	return 0
}
