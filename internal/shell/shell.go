// Package shell implements the interactive amrplot session: the command
// interpreter, the mutable view state, and the readline REPL around them.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/KiranEiden/amrplot/internal/config"
	"github.com/KiranEiden/amrplot/internal/render"
)

const prompt = "> "

// Shell owns the session state: one FileContext, one ViewState bound to it,
// and the display configuration. A single goroutine runs commands to
// completion one at a time.
type Shell struct {
	cfg   *config.Config
	file  *FileContext
	state *ViewState
	out   io.Writer
}

func New(cfg *config.Config) *Shell {
	file := NewFileContext()
	return &Shell{
		cfg:   cfg,
		file:  file,
		state: NewViewState(file),
		out:   os.Stdout,
	}
}

func (sh *Shell) renderOpts() render.Options {
	return render.Options{
		Width:       sh.cfg.PlotWidth,
		Height:      sh.cfg.PlotHeight,
		ProfileRows: sh.cfg.ProfileRows,
		Theme:       sh.cfg.Theme,
		Viewer:      sh.cfg.Viewer,
	}
}

// Run reads command lines until quit or EOF. Interrupt cancels the current
// line only.
func (sh *Shell) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     sh.cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(sh.out, "Welcome to amrplot. Type 'help' for a list of commands.")
	fmt.Fprintln(sh.out)

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(sh.out, "Good bye!")
				return nil
			}
			return err
		}
		if sh.Eval(line) {
			return nil
		}
	}
}

// Eval runs one command line, printing any error, and reports whether the
// session should end. Command errors never end the session.
func (sh *Shell) Eval(line string) bool {
	args := Tokenize(line)
	if len(args) == 0 {
		return false
	}

	name := strings.ToLower(args[0])
	handler, ok := handlers[name]
	if !ok {
		fmt.Fprintln(sh.out, "invalid command")
		fmt.Fprintln(sh.out)
		return false
	}

	err := handler(sh, args[1:])
	if errors.Is(err, errQuit) {
		fmt.Fprintln(sh.out, "Good bye!")
		return true
	}
	if err != nil {
		fmt.Fprintln(sh.out, err)
	}
	fmt.Fprintln(sh.out)
	return false
}
