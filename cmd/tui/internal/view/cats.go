package view

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spycats/internal/agency"
)

type catState int

const (
	catStateBrowse catState = iota
	catStateAdd
	catStateSalary
	catStateDelete
	catStateDetails
)

// catForm holds huh bindings; it is shared by pointer so model copies see input.
type catForm struct {
	name       string
	breed      string
	experience string
	salary     string
	confirm    bool
}

// BreedLister supplies breed names for the add form.
type BreedLister interface {
	Breeds(ctx context.Context) ([]string, error)
}

type CatsModel struct {
	CommonModel
	svc    *agency.Service
	breeds BreedLister

	state   catState
	table   table.Model
	cats    []*agency.Cat
	total   int
	form    *huh.Form
	fields  *catForm
	details *catDetails

	loading bool
	err     error
	status  string
}

type catDetails struct {
	cat       *agency.Cat
	available bool
}

func NewCatsModel(svc *agency.Service, breeds BreedLister) CatsModel {
	return CatsModel{
		svc:    svc,
		breeds: breeds,
		table: newTable([]table.Column{
			{Title: "Name", Width: 20},
			{Title: "Breed", Width: 20},
			{Title: "Exp", Width: 5},
			{Title: "Salary", Width: 12},
			{Title: "Hired", Width: 12},
		}),
		loading: true,
	}
}

func (m CatsModel) Title() string { return "Cats" }

func (m CatsModel) ShortHelp() string {
	switch m.state {
	case catStateBrowse:
		return "Esc: back | Enter: details | a: add | e: salary | d: delete | r: refresh"
	case catStateDetails:
		return "Esc: close"
	default:
		return "Navigate form | Esc: cancel"
	}
}

func (m CatsModel) Init() tea.Cmd {
	return m.loadCatsCmd()
}

func (m CatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCatsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.cats = msg.cats
		m.total = msg.total
		m.refreshTable()

		return m, nil

	case catSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = describeError(msg.action, msg.err)
		}

		m.resetForm()

		return m, m.loadCatsCmd()

	case breedSuggestionsMsg:
		return m.openForm(catStateAdd, nil, msg.names)

	case catDetailsMsg:
		if msg.err != nil {
			m.status = describeError("load cat", msg.err)
			m.state = catStateBrowse

			return m, nil
		}

		m.details = &catDetails{cat: msg.cat, available: msg.available}

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(msg.Height - 10)

		return m, nil
	}

	switch m.state {
	case catStateBrowse:
		return m.updateBrowse(msg)
	case catStateDetails:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && (keyMsg.Type == tea.KeyEsc || keyMsg.String() == "enter") {
			m.state = catStateBrowse
			m.details = nil
			m.table.Focus()
		}

		return m, nil
	default:
		return m.updateForm(msg)
	}
}

func (m CatsModel) selected() *agency.Cat {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.cats) {
		return nil
	}

	return m.cats[idx]
}

func (m CatsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCatsCmd()
		case "a":
			m.status = "Fetching breeds..."
			return m, m.loadBreedsCmd()
		case "e":
			if cat := m.selected(); cat != nil {
				return m.openForm(catStateSalary, cat, nil)
			}
		case "d":
			if cat := m.selected(); cat != nil {
				return m.openForm(catStateDelete, cat, nil)
			}
		case "enter":
			if cat := m.selected(); cat != nil {
				m.state = catStateDetails
				m.table.Blur()

				return m, m.loadDetailsCmd(cat)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CatsModel) openForm(state catState, cat *agency.Cat, breeds []string) (tea.Model, tea.Cmd) {
	m.fields = &catForm{}
	m.status = ""

	switch state {
	case catStateAdd:
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Name").Value(&m.fields.name).Validate(notBlank("name")),
				huh.NewInput().
					Title("Breed").
					Placeholder("Siamese").
					Suggestions(breeds).
					Value(&m.fields.breed).
					Validate(notBlank("breed")),
				huh.NewInput().Title("Years of experience").Value(&m.fields.experience).Validate(validateExperience),
				huh.NewInput().Title("Salary").Placeholder("1500.00").Value(&m.fields.salary).Validate(validateSalary),
			),
		)
	case catStateSalary:
		m.fields.salary = FormatSalary(cat.Salary)
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Salary for " + cat.Name).Value(&m.fields.salary).Validate(validateSalary),
			),
		)
	case catStateDelete:
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete %s?", cat.Name)).
					Affirmative("Delete").
					Negative("Cancel").
					Value(&m.fields.confirm),
			),
		)
	}

	m.form = m.form.WithWidth(45).WithShowHelp(false)
	m.state = state
	m.table.Blur()

	return m, m.form.Init()
}

func (m *CatsModel) resetForm() {
	m.state = catStateBrowse
	m.form = nil
	m.fields = nil
	m.table.Focus()
}

func (m CatsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.resetForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case catStateAdd:
		return m, m.createCmd(*m.fields)
	case catStateSalary:
		return m, m.updateSalaryCmd(m.selected(), m.fields.salary)
	case catStateDelete:
		if !m.fields.confirm {
			m.resetForm()
			return m, nil
		}

		return m, m.deleteCmd(m.selected())
	}

	return m, nil
}

func (m CatsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading cats...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Spy cats: %s", activeStyle(strconv.Itoa(m.total)))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	switch {
	case m.state == catStateDetails && m.details != nil:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.detailsView())
	case m.form != nil:
		titles := map[catState]string{
			catStateAdd:    "Hire Cat",
			catStateSalary: "Edit Salary",
			catStateDelete: "Retire Cat",
		}
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(titles[m.state], m.form.View()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m CatsModel) detailsView() string {
	cat := m.details.cat

	availability := "On a mission"
	if m.details.available {
		availability = "Available"
	}

	return panel(cat.Name, fmt.Sprintf(
		"Breed:      %s\nExperience: %d years\nSalary:     %s\nStatus:     %s\nHired:      %s\nID:         %s",
		cat.Breed, cat.YearsOfExperience, FormatSalary(cat.Salary), availability, FormatDate(cat.CreatedAt), cat.ID,
	))
}

func (m *CatsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.cats))
	for _, c := range m.cats {
		rows = append(rows, table.Row{
			c.Name,
			c.Breed,
			strconv.Itoa(c.YearsOfExperience),
			FormatSalary(c.Salary),
			FormatDate(c.CreatedAt),
		})
	}

	m.table.SetRows(rows)
}

func validateExperience(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}

	if n < agency.MinExperience || n > agency.MaxExperience {
		return fmt.Errorf("must be between %d and %d", agency.MinExperience, agency.MaxExperience)
	}

	return nil
}

func validateSalary(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter an amount like 1500.00")
	}

	if !d.IsPositive() {
		return fmt.Errorf("salary must be positive")
	}

	return nil
}

// Messages

type loadCatsMsg struct {
	cats  []*agency.Cat
	total int
	err   error
}

func (m CatsModel) loadCatsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cats, total, err := m.svc.ListCats(ctx, agency.Page{Limit: agency.MaxPageLimit})

		return loadCatsMsg{cats: cats, total: total, err: err}
	}
}

type breedSuggestionsMsg struct {
	names []string
}

// loadBreedsCmd never fails; without the registry the form just has no suggestions.
func (m CatsModel) loadBreedsCmd() tea.Cmd {
	if m.breeds == nil {
		return func() tea.Msg { return breedSuggestionsMsg{} }
	}

	return func() tea.Msg {
		ctx, cancel := RemoteCtx()
		defer cancel()

		names, err := m.breeds.Breeds(ctx)
		if err != nil {
			slog.Warn("failed to load breed suggestions", "error", err)
		}

		return breedSuggestionsMsg{names: names}
	}
}

type catDetailsMsg struct {
	cat       *agency.Cat
	available bool
	err       error
}

func (m CatsModel) loadDetailsCmd(cat *agency.Cat) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		fresh, err := m.svc.GetCat(ctx, cat.ID)
		if err != nil {
			return catDetailsMsg{err: err}
		}

		available, err := m.svc.CatAvailability(ctx, cat.ID)

		return catDetailsMsg{cat: fresh, available: available, err: err}
	}
}

type catSavedMsg struct {
	action string
	status string
	err    error
}

func (m CatsModel) createCmd(f catForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := RemoteCtx()
		defer cancel()

		years, _ := strconv.Atoi(strings.TrimSpace(f.experience))
		salary, _ := decimal.NewFromString(strings.TrimSpace(f.salary))

		cat, err := m.svc.CreateCat(ctx, agency.CreateCatParams{
			Name:              f.name,
			YearsOfExperience: years,
			Breed:             f.breed,
			Salary:            salary,
		})
		if err != nil {
			return catSavedMsg{action: "hire cat", err: err}
		}

		return catSavedMsg{status: fmt.Sprintf("Hired %s", cat.Name)}
	}
}

func (m CatsModel) updateSalaryCmd(cat *agency.Cat, raw string) tea.Cmd {
	if cat == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		salary, _ := decimal.NewFromString(strings.TrimSpace(raw))

		updated, err := m.svc.UpdateCatSalary(ctx, cat.ID, salary)
		if err != nil {
			return catSavedMsg{action: "update salary", err: err}
		}

		return catSavedMsg{status: fmt.Sprintf("%s now earns %s", updated.Name, FormatSalary(updated.Salary))}
	}
}

func (m CatsModel) deleteCmd(cat *agency.Cat) tea.Cmd {
	if cat == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.DeleteCat(ctx, cat.ID); err != nil {
			return catSavedMsg{action: "delete cat", err: err}
		}

		return catSavedMsg{status: fmt.Sprintf("Retired %s", cat.Name)}
	}
}
