package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spycats/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/spycats/internal/agency"
	"github.com/MrJamesThe3rd/spycats/internal/app"
	"github.com/MrJamesThe3rd/spycats/internal/config"
)

type model struct {
	svc    *agency.Service
	breeds view.BreedLister

	currentView View

	catsView     view.CatsModel
	missionsView view.MissionsModel
}

type View int

const (
	ViewMenu     View = 0
	ViewCats     View = 1
	ViewMissions View = 2
)

func initialModel(svc *agency.Service, breeds view.BreedLister) model {
	return model{
		svc:          svc,
		breeds:       breeds,
		currentView:  ViewMenu,
		catsView:     view.NewCatsModel(svc, breeds),
		missionsView: view.NewMissionsModel(svc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewCats
				m.catsView = view.NewCatsModel(m.svc, m.breeds)

				return m, m.catsView.Init()
			case "2":
				m.currentView = ViewMissions
				m.missionsView = view.NewMissionsModel(m.svc)

				return m, m.missionsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewCats:
		var newModel tea.Model
		newModel, cmd = m.catsView.Update(msg)
		m.catsView = newModel.(view.CatsModel)
	case ViewMissions:
		var newModel tea.Model
		newModel, cmd = m.missionsView.Update(msg)
		m.missionsView = newModel.(view.MissionsModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Spy Cat Agency\n\n" +
				"1. Cats\n" +
				"2. Missions\n\n" +
				"q. Quit",
		)
	case ViewCats:
		current = m.catsView
	case ViewMissions:
		current = m.missionsView
	default:
		return "Unknown View"
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, current.View(), help)
}

func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// slog writes through the standard logger; keep it off the terminal the TUI owns.
	if path := os.Getenv("TUI_LOG"); path != "" {
		f, err := tea.LogToFile(path, "spycats")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("starting: %w", err)
	}
	defer a.Close()

	_, err = tea.NewProgram(initialModel(a.Service, a.Breeds), tea.WithAltScreen()).Run()

	return err
}
