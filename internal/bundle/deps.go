package bundle

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

const (
	bundleDirPerm    = 0o755
	metadataFilePerm = 0o644
)

// Manager carries the injectable collaborators for the lifecycle
// operations. Defaults talk to the real OS; tests replace individual
// fields.
type Manager struct {
	homeDir     func() (string, error)
	isElevated  func() bool
	getenv      func(string) string
	runProvider func(context.Context, []string) error
	runBundle   func(ctx context.Context, path string, args []string) error
	confirm     func(name string) (bool, error)
	statusOut   io.Writer
}

func NewManager() *Manager {
	return &Manager{
		homeDir:     os.UserHomeDir,
		isElevated:  isElevated,
		getenv:      os.Getenv,
		runProvider: runProvider,
		runBundle:   runBundle,
		confirm:     promptConfirm,
	}
}

func (m *Manager) SetStatusWriter(writer io.Writer) {
	m.statusOut = writer
}

func (m *Manager) statusf(format string, args ...any) {
	if m.statusOut == nil {
		return
	}
	_, _ = fmt.Fprintf(m.statusOut, format, args...)
}

func (m *Manager) out() io.Writer {
	if m.statusOut == nil {
		return io.Discard
	}
	return m.statusOut
}

// runProvider invokes the external package provider as an argv vector
// with inherited output streams, blocking until it exits.
func runProvider(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// runBundle executes a bundle entry point as a child process with the
// parent's standard streams, blocking until it exits.
func runBundle(ctx context.Context, path string, args []string) error {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// promptConfirm asks for an interactive yes before a delete. Only a
// case-insensitive "y" accepts; anything else, empty input, and a
// non-terminal stdin all decline.
func promptConfirm(name string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, nil
	}
	fmt.Fprintf(os.Stderr, "Delete %s? (y/N): ", name)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}
