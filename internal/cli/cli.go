package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/sparkpipego/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usage(output io.Writer, flagSet *flag.FlagSet) {
	fmt.Fprint(output, `
sparkpipego - staging engine for SPARK resampling analyses.

Usage:
  sparkpipego setup  --opt FILE [options]
  sparkpipego run    --snapshot FILE --stage {A|B|C} [--jobs EXPR] [options]
  sparkpipego wrapup --snapshot FILE [options]

Commands:
  setup    Build the full three-stage task graph for every dataset of the
           option file and persist the pipeline snapshot.
  run      Reload one stage group from a snapshot, optionally narrowed by a
           selection expression, and emit its job list.
  wrapup   Validate stage-3 exit-status artifacts and collect completed
           outputs with provenance.

Options:
`)
	flagSet.PrintDefaults()
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	if len(args) == 0 {
		flagSet := flag.NewFlagSet("sparkpipego", flag.ContinueOnError)
		usage(output, flagSet)
		return nil, true, nil
	}

	command := strings.ToLower(args[0])
	flagSet := flag.NewFlagSet("sparkpipego "+command, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() { usage(output, flagSet) }

	optFlag := flagSet.String("opt", "", "Path to the pipeline option file (HCL).")
	snapshotFlag := flagSet.String("snapshot", "", "Path to the persisted pipeline snapshot.")
	stageFlag := flagSet.String("stage", "", "Stage group id: A/B/C (aliases setup/run/wrapup).")
	jobsFlag := flagSet.String("jobs", "", "Selection expression: index list with ';' sentinel (e.g. \"3;\"), or a name substring.")
	exeFlag := flagSet.String("exe", "spark_samapp", "Path to the standalone compute application.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		Command:      command,
		OptFile:      *optFlag,
		SnapshotPath: *snapshotFlag,
		StageID:      *stageFlag,
		Selection:    *jobsFlag,
		ExePath:      *exeFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return config, false, nil
}
