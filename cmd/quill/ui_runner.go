package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"quill/internal/driver"
	"quill/internal/source"
	"quill/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []driver.DirResult
	err     error
}

// runDirCheck runs a directory parse, optionally behind the progress
// TUI. Events come from worker goroutines as each file finishes.
func runDirCheck(cmd *cobra.Command, dir string, opts driver.ParseDirOptions, useTUI bool) (*source.FileSet, []driver.DirResult, error) {
	if !useTUI {
		return driver.ParseDir(cmd.Context(), dir, opts)
	}

	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan ui.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.OnResult = func(res driver.DirResult) {
			status := ui.StatusClean
			switch {
			case res.Builder == nil:
				status = ui.StatusFailed
			case res.Bag.Len() > 0:
				status = ui.StatusFindings
			}
			events <- ui.Event{Path: res.Path, Status: status, Findings: res.Bag.Len()}
		}
		fs, results, err := driver.ParseDir(cmd.Context(), dir, optsCopy)
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
