package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sync"

	"github.com/goccy/go-json"
	"github.com/listsync/listsync/internal/config"
	"github.com/listsync/listsync/internal/scenario"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
)

const (
	RERUN_SEPARATOR = "-----------------------------------------"
)

type runOptions struct {
	jsonOutput bool
	profile    termenv.Profile
	logger     *zerolog.Logger
}

func RunScenario(ctx context.Context, cfg config.Config, args []string, outW, errW io.Writer) (exitCode int) {
	flags := flag.NewFlagSet(RUN_SUBCMD, flag.ContinueOnError)
	flags.SetOutput(errW)

	var verbose bool
	var noColor bool
	var jsonOutput bool
	var watch bool
	flags.BoolVar(&verbose, "v", false, "log the changes processed by the lists")
	flags.BoolVar(&noColor, "no-color", false, "do not colorize the output")
	flags.BoolVar(&jsonOutput, "json", false, "print the snapshots as JSON lines")
	flags.BoolVar(&watch, "watch", false, "run the scenario again each time the file changes, until interrupted")

	if showHelp(flags, args, outW) {
		return
	}

	moveFlagsStart(args)
	if err := flags.Parse(args); err != nil {
		return ERROR_STATUS_CODE
	}

	fpath := flags.Arg(0)
	if fpath == "" {
		fmt.Fprintf(errW, "missing scenario path\n")
		return ERROR_STATUS_CODE
	}

	logger := createLogger(errW, cfg, verbose)

	opts := runOptions{
		jsonOutput: jsonOutput,
		profile:    cfg.ColorProfile,
		logger:     &logger,
	}
	if noColor || !cfg.Colorize {
		opts.profile = termenv.Ascii
	}

	exitCode = runScenarioFile(ctx, fpath, opts, outW, errW)
	if !watch {
		return exitCode
	}

	var lock sync.Mutex

	err := watchFile(ctx, fpath, WATCH_DEBOUNCE_DURATION, func() {
		lock.Lock()
		defer lock.Unlock()

		if ctx.Err() != nil {
			return
		}

		fmt.Fprintln(outW, RERUN_SEPARATOR)
		runScenarioFile(ctx, fpath, opts, outW, errW)
	}, logger)

	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	//the last exit code is not relevant in watch mode.
	return 0
}

func runScenarioFile(ctx context.Context, fpath string, opts runOptions, outW, errW io.Writer) (exitCode int) {
	s, err := scenario.LoadFile(fpath)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	runner, err := scenario.NewRunner(s, scenario.RunnerConfig{Logger: opts.logger})
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	snapshots, runErr := runner.Run(ctx)

	encoder := json.NewEncoder(outW)

	for _, snapshot := range snapshots {
		var err error
		if opts.jsonOutput {
			err = encoder.Encode(snapshot)
		} else {
			err = scenario.Render(outW, snapshot, opts.profile)
		}
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
	}

	if runErr != nil {
		fmt.Fprintln(errW, runErr)
		return ERROR_STATUS_CODE
	}
	return 0
}

func CheckScenarios(ctx context.Context, cfg config.Config, args []string, outW, errW io.Writer) (exitCode int) {
	flags := flag.NewFlagSet(CHECK_SUBCMD, flag.ContinueOnError)
	flags.SetOutput(errW)

	var verbose bool
	flags.BoolVar(&verbose, "v", false, "log the changes processed by the lists")

	if showHelp(flags, args, outW) {
		return
	}

	moveFlagsStart(args)
	if err := flags.Parse(args); err != nil {
		return ERROR_STATUS_CODE
	}

	if flags.NArg() == 0 {
		fmt.Fprintf(errW, "missing scenario path\n")
		return ERROR_STATUS_CODE
	}

	paths, err := expandScenarioPaths(flags.Args())
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	logger := createLogger(errW, cfg, verbose)
	failed := 0

	for _, fpath := range paths {
		err := checkScenario(ctx, fpath, &logger)

		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}

		if err != nil {
			failed++
			fmt.Fprintf(outW, "FAIL %s\n\t%s\n", fpath, err)
		} else {
			fmt.Fprintf(outW, "ok   %s\n", fpath)
		}
	}

	if failed > 0 {
		fmt.Fprintf(outW, "%d/%d scenario(s) failed\n", failed, len(paths))
		return ERROR_STATUS_CODE
	}
	return 0
}

func checkScenario(ctx context.Context, fpath string, logger *zerolog.Logger) error {
	s, err := scenario.LoadFile(fpath)
	if err != nil {
		return err
	}

	runner, err := scenario.NewRunner(s, scenario.RunnerConfig{Logger: logger})
	if err != nil {
		return err
	}

	_, err = runner.Run(ctx)
	return err
}
