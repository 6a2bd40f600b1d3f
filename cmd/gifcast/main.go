// Command gifcast converts a video clip into a looping animated GIF.
//
//	gifcast <input-video> <output-gif> [maxDurationSeconds] [targetFps] [maxWidth]
//
// A maxDurationSeconds of 999 or more keeps the full source length. Exit
// code is 0 on success and 1 on any failure.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/vidtools/gifcast"

	"go.uber.org/zap"
)

const usage = `Usage: gifcast <input-video> <output-gif> [maxDurationSeconds=10] [targetFps=10] [maxWidth=500]`

var errUsage = errors.New("usage")

type invocation struct {
	inputPath  string
	outputPath string
	opts       gifcast.Options
}

func parseArgs(args []string) (*invocation, error) {
	if len(args) < 2 {
		return nil, errUsage
	}

	inv := &invocation{
		inputPath:  args[0],
		outputPath: args[1],
		opts: gifcast.Options{
			MaxDuration: 10,
			TargetFPS:   10,
			MaxWidth:    500,
		},
	}

	optional := []*int{&inv.opts.MaxDuration, &inv.opts.TargetFPS, &inv.opts.MaxWidth}
	for i, dst := range optional {
		if len(args) <= 2+i {
			break
		}
		v, err := strconv.Atoi(args[2+i])
		if err != nil {
			return nil, errUsage
		}
		*dst = v
	}

	return inv, nil
}

// newLogger keeps structured diagnostics out of the single-line
// stdout/stderr contract: only error-level records reach stderr.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func run(args []string) int {
	inv, err := parseArgs(args)
	if err != nil {
		fmt.Println(usage)
		return 1
	}

	if _, err := os.Stat(inv.inputPath); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Input file not found: %s\n", inv.inputPath)
		return 1
	}

	log, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()
	inv.opts.Logger = log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := gifcast.New(inv.opts).Convert(ctx, inv.inputPath, inv.outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}

	fmt.Printf("SUCCESS: Converted %s to %s (%d frames)\n", inv.inputPath, inv.outputPath, res.Frames)
	return 0
}

func main() {
	os.Exit(run(os.Args[1:]))
}
