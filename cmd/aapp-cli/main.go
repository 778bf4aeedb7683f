package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aapp-cli/aapp-cli/internal/bundle"
	"github.com/aapp-cli/aapp-cli/internal/cli"
)

func main() {
	manager := bundle.NewManager()
	manager.SetStatusWriter(os.Stdout)

	root := newRootCommand(context.Background(), manager)
	if err := root.Execute(os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps each failure kind to a stable non-zero exit code so
// scripts can distinguish outcomes without parsing messages.
func exitCode(err error) int {
	kinds := []struct {
		sentinel error
		code     int
	}{
		{bundle.ErrFetchFailed, 10},
		{bundle.ErrNoEntryPoint, 11},
		{bundle.ErrBundleNotFound, 12},
		{bundle.ErrMetadataMissing, 13},
		{bundle.ErrMetadataCorrupt, 14},
		{bundle.ErrExecutableMissing, 15},
		{bundle.ErrExecutionFailed, 16},
		{bundle.ErrDeleteFailed, 17},
	}
	for _, kind := range kinds {
		if errors.Is(err, kind.sentinel) {
			return kind.code
		}
	}
	return 1
}
