package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/peterh/liner"
)

// runBatch executes one command per input line. The first failing command
// stops the run.
func runBatch(session *Session, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		quit, err := session.Exec(scanner.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}

		if quit {
			return nil
		}
	}

	err := scanner.Err()
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return nil
}

// repl is the interactive command loop.
type repl struct {
	session *Session
	cfg     Config
	io      *IO
	liner   *liner.State
}

// run starts the REPL loop on the controlling terminal.
func (r *repl) run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(completeCommand)

	r.loadHistory()

	r.io.Printf("ringy - ring heap REPL (capacity=%d, order=%s)\n", r.cfg.Capacity, r.cfg.Order)
	r.io.Println("Type 'help' for available commands.")
	r.io.Println()

	for {
		line, err := r.liner.Prompt("ringy> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				r.io.Println()

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		quit, err := r.session.Exec(line)
		if err != nil {
			r.io.ErrPrintln("error:", err)

			continue
		}

		if quit {
			break
		}
	}

	r.saveHistory()

	return nil
}

func (r *repl) loadHistory() {
	if !r.cfg.HistoryEnabled() || r.cfg.HistoryFile == "" {
		return
	}

	f, err := os.Open(r.cfg.HistoryFile)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = r.liner.ReadHistory(f)
}

func (r *repl) saveHistory() {
	if !r.cfg.HistoryEnabled() || r.cfg.HistoryFile == "" {
		return
	}

	var buf bytes.Buffer

	_, err := r.liner.WriteHistory(&buf)
	if err == nil {
		err = writeHistory(r.cfg.HistoryFile, &buf)
	}

	if err != nil {
		r.io.Warn("cannot save history", err.Error())
	}
}

// writeHistory replaces path with the contents of r so a crash never leaves
// a truncated history file behind.
func writeHistory(path string, r io.Reader) error {
	err := atomic.WriteFile(path, r)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// completeCommand provides tab completion for command names.
func completeCommand(line string) []string {
	var completions []string

	lower := strings.ToLower(line)
	for _, name := range commandNames {
		if strings.HasPrefix(name, lower) {
			completions = append(completions, name)
		}
	}

	return completions
}
