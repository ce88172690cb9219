package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode is how pgload presents progress.
type Mode int

const (
	// ModeNonInteractive prints plain status lines. Used for CI, pipes and redirected output.
	ModeNonInteractive Mode = iota
	// ModeInteractive shows the live progress view.
	ModeInteractive
)

// nonInteractiveEnv reports whether the environment asks for plain output:
// PGLOAD_NON_INTERACTIVE=1, CI set, or NO_COLOR set.
func nonInteractiveEnv() bool {
	return os.Getenv("PGLOAD_NON_INTERACTIVE") == "1" ||
		os.Getenv("CI") != "" ||
		os.Getenv("NO_COLOR") != ""
}

// DetectMode returns ModeInteractive only when both stdin and stdout are
// terminals and no environment override is set. Stdin matters because the
// progress view reads ctrl+c from it.
func DetectMode() Mode {
	if nonInteractiveEnv() {
		return ModeNonInteractive
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}

// ColorEnabled reports whether plain status lines may carry ANSI colour.
func ColorEnabled() bool {
	return os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stdout.Fd()))
}
