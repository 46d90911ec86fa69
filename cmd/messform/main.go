// Command messform is a terminal client for the mess menu feedback server.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/client"
	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/logging"
	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	defaultAPI := os.Getenv("MESS_API_URL")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:5000"
	}

	api := flag.String("api", defaultAPI, "base URL of the feedback server")
	out := flag.String("out", ".", "directory for downloaded reports")
	logFile := flag.String("log", os.Getenv("MESS_LOG_FILE"), "write debug logs to this file")
	flag.Parse()

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	var w io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	slog.SetDefault(logging.New(w, "debug", "text"))

	c, err := client.New(*api)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	model := tui.New(c, tui.Options{APIURL: *api, OutDir: *out})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		slog.Error("ui exited", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
