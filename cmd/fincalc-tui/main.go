package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/rgehrsitz/fincalc/internal/history"
	_ "github.com/rgehrsitz/fincalc/internal/history/sqlite"
	"github.com/rgehrsitz/fincalc/internal/tui"
)

func main() {
	historyPath := flag.String("history", os.Getenv("FINCALC_HISTORY"), "history file for saved results (.db/.sqlite for SQLite, otherwise JSON)")
	historyLimit := flag.Int("history-limit", history.DefaultLimit, "number of calculations kept in history")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: fincalc-tui [flags] [config-file]")
		flag.PrintDefaults()
	}
	flag.Parse()

	os.Exit(run(flag.Arg(0), *historyPath, *historyLimit))
}

// run returns the exit code so deferred cleanup happens before os.Exit
func run(configPath, historyPath string, historyLimit int) int {
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			fmt.Printf("Error: Config file not found: %s\n", configPath)
			return 1
		}
	}

	var store history.Store
	if historyPath != "" {
		var err error
		store, err = history.Open(historyPath, historyLimit)
		if err != nil {
			fmt.Printf("Error opening history: %v\n", err)
			return 1
		}
		defer store.Close()
	}

	p := tea.NewProgram(
		tui.NewModel(configPath, store),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		return 1
	}
	return 0
}
