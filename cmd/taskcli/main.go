package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/VinayakFrontend/task-manager-app/app"
	"github.com/VinayakFrontend/task-manager-app/client"
)

func main() {
	cfg, err := client.LoadConfig(client.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	session := client.NewSession(cfg.TokenPath)
	api := client.New(cfg.ServerURL, session)

	p := tea.NewProgram(app.New(api), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
