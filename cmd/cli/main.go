package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/sparkpipego/internal/app"
	"github.com/vk/sparkpipego/internal/cli"
)

// main is the entrypoint for the sparkpipego application.
func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	engine, err := app.New(outW, errW, appConfig)
	if err != nil {
		return err
	}
	return engine.Run(context.Background())
}
