package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spycats/internal/agency"
)

type missionState int

const (
	missionStateBrowse missionState = iota
	missionStateCreate
	missionStateAssign
	missionStateDelete
	missionStateTargets
	missionStateNotes
)

type targetFields struct {
	name    string
	country string
	notes   string
}

// missionForm holds huh bindings; it is shared by pointer so model copies see input.
type missionForm struct {
	targets [agency.MaxTargets]targetFields
	catID   string
	notes   string
	confirm bool
}

// params returns the filled-in targets, skipping rows left entirely blank.
func (f *missionForm) params() []agency.TargetParams {
	var out []agency.TargetParams

	for _, t := range f.targets {
		if strings.TrimSpace(t.name) == "" && strings.TrimSpace(t.country) == "" {
			continue
		}

		out = append(out, agency.TargetParams{
			Name:    t.name,
			Country: t.country,
			Notes:   agency.NormalizeNotes(t.notes),
		})
	}

	return out
}

type MissionsModel struct {
	CommonModel
	svc *agency.Service

	state    missionState
	table    table.Model
	targets  table.Model
	missions []*agency.Mission
	total    int
	current  *agency.Mission
	form     *huh.Form
	fields   *missionForm

	loading bool
	err     error
	status  string
}

func NewMissionsModel(svc *agency.Service) MissionsModel {
	return MissionsModel{
		svc: svc,
		table: newTable([]table.Column{
			{Title: "ID", Width: 10},
			{Title: "Cat", Width: 20},
			{Title: "Targets", Width: 8},
			{Title: "Status", Width: 10},
			{Title: "Created", Width: 12},
		}),
		targets: newTable([]table.Column{
			{Title: "Name", Width: 18},
			{Title: "Country", Width: 14},
			{Title: "Done", Width: 5},
			{Title: "Notes", Width: 30},
		}),
		loading: true,
	}
}

func (m MissionsModel) Title() string { return "Missions" }

func (m MissionsModel) ShortHelp() string {
	switch m.state {
	case missionStateBrowse:
		return "Esc: back | Enter: targets | n: new | a: assign | d: delete | r: refresh"
	case missionStateTargets:
		return "Esc: missions | Space: toggle complete | e: edit notes"
	default:
		return "Navigate form | Esc: cancel"
	}
}

func (m MissionsModel) Init() tea.Cmd {
	return m.loadMissionsCmd()
}

func (m MissionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadMissionsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.missions = msg.missions
		m.total = msg.total
		m.refreshTable()

		return m, nil

	case missionLoadedMsg:
		if msg.err != nil {
			m.status = describeError("load mission", msg.err)
			m.closeTargets()

			return m, m.loadMissionsCmd()
		}

		m.current = msg.mission
		m.refreshTargets()

		return m, nil

	case missionSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = describeError(msg.action, msg.err)
		}

		back := m.state
		m.resetForm()

		if m.current != nil && (back == missionStateNotes || back == missionStateTargets) {
			m.state = missionStateTargets
			m.table.Blur()
			m.targets.Focus()

			return m, m.loadMissionCmd(m.current.ID)
		}

		return m, m.loadMissionsCmd()

	case assignCandidatesMsg:
		if msg.err != nil {
			m.status = describeError("list cats", msg.err)
			return m, nil
		}

		if len(msg.cats) == 0 {
			m.status = "Hire a cat before assigning missions"
			return m, nil
		}

		return m.openAssignForm(msg.cats)

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(msg.Height - 10)
		m.targets.SetHeight(agency.MaxTargets + 1)

		return m, nil
	}

	switch m.state {
	case missionStateBrowse:
		return m.updateBrowse(msg)
	case missionStateTargets:
		return m.updateTargets(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m MissionsModel) selected() *agency.Mission {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.missions) {
		return nil
	}

	return m.missions[idx]
}

func (m MissionsModel) selectedTarget() *agency.Target {
	if m.current == nil {
		return nil
	}

	idx := m.targets.Cursor()
	if idx < 0 || idx >= len(m.current.Targets) {
		return nil
	}

	return m.current.Targets[idx]
}

func (m MissionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadMissionsCmd()
		case "n":
			return m.openCreateForm()
		case "a":
			if mission := m.selected(); mission != nil {
				return m, m.loadCandidatesCmd()
			}
		case "d":
			if mission := m.selected(); mission != nil {
				return m.openDeleteForm(mission)
			}
		case "enter":
			if mission := m.selected(); mission != nil {
				m.state = missionStateTargets
				m.current = mission
				m.refreshTargets()
				m.table.Blur()
				m.targets.Focus()

				return m, m.loadMissionCmd(mission.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m MissionsModel) updateTargets(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.closeTargets()
			return m, m.loadMissionsCmd()
		case " ":
			if target := m.selectedTarget(); target != nil {
				return m, m.toggleTargetCmd(target)
			}
		case "e":
			if target := m.selectedTarget(); target != nil {
				return m.openNotesForm(target)
			}
		}
	}

	var cmd tea.Cmd
	m.targets, cmd = m.targets.Update(msg)

	return m, cmd
}

func (m *MissionsModel) closeTargets() {
	m.state = missionStateBrowse
	m.current = nil
	m.targets.Blur()
	m.table.Focus()
}

func (m MissionsModel) openCreateForm() (tea.Model, tea.Cmd) {
	m.fields = &missionForm{}

	groups := make([]*huh.Group, 0, agency.MaxTargets)
	for i := range m.fields.targets {
		t := &m.fields.targets[i]
		label := fmt.Sprintf("Target %d", i+1)

		name := huh.NewInput().Title(label + " name").Value(&t.name)
		country := huh.NewInput().Title("Country").Value(&t.country)

		if i < agency.MinTargets {
			name = name.Validate(notBlank("name"))
			country = country.Validate(notBlank("country"))
		} else {
			label += " (optional)"
			name = name.Title(label + " name")
		}

		groups = append(groups, huh.NewGroup(
			name,
			country,
			huh.NewText().Title("Notes").Value(&t.notes).Lines(3),
		))
	}

	m.form = huh.NewForm(groups...).WithWidth(45).WithShowHelp(false)
	m.state = missionStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m MissionsModel) openAssignForm(cats []*agency.Cat) (tea.Model, tea.Cmd) {
	mission := m.selected()
	if mission == nil {
		return m, nil
	}

	m.fields = &missionForm{}

	options := make([]huh.Option[string], 0, len(cats))
	for _, c := range cats {
		label := fmt.Sprintf("%s (%s, %dy)", c.Name, c.Breed, c.YearsOfExperience)
		options = append(options, huh.NewOption(label, c.ID.String()))
	}

	if mission.CatID != nil {
		m.fields.catID = mission.CatID.String()
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Assign mission " + ShortID(mission.ID)).
				Options(options...).
				Value(&m.fields.catID),
		),
	).WithWidth(45).WithShowHelp(false)
	m.state = missionStateAssign
	m.table.Blur()

	return m, m.form.Init()
}

func (m MissionsModel) openDeleteForm(mission *agency.Mission) (tea.Model, tea.Cmd) {
	m.fields = &missionForm{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete mission %s?", ShortID(mission.ID))).
				Description("Its targets are deleted with it.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.fields.confirm),
		),
	).WithWidth(45).WithShowHelp(false)
	m.state = missionStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m MissionsModel) openNotesForm(target *agency.Target) (tea.Model, tea.Cmd) {
	m.fields = &missionForm{}
	if target.Notes != nil {
		m.fields.notes = *target.Notes
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Notes on " + target.Name).Value(&m.fields.notes).Lines(5),
		),
	).WithWidth(45).WithShowHelp(false)
	m.state = missionStateNotes
	m.targets.Blur()

	return m, m.form.Init()
}

func (m *MissionsModel) resetForm() {
	if m.state == missionStateNotes {
		m.state = missionStateTargets
		m.targets.Focus()
	} else {
		m.state = missionStateBrowse
		m.table.Focus()
	}

	m.form = nil
	m.fields = nil
}

func (m MissionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	case missionStateCreate:
		return m, m.createCmd(m.fields.params())
	case missionStateAssign:
		return m, m.assignCmd(m.selected(), m.fields.catID)
	case missionStateDelete:
		if !m.fields.confirm {
			m.resetForm()
			return m, nil
		}

		return m, m.deleteCmd(m.selected())
	case missionStateNotes:
		return m, m.notesCmd(m.selectedTarget(), m.fields.notes)
	}

	return m, nil
}

func (m MissionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading missions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var content string

	if (m.state == missionStateTargets || m.state == missionStateNotes) && m.current != nil {
		content = m.targetsView()
	} else {
		header := fmt.Sprintf("Missions: %s", activeStyle(strconv.Itoa(m.total)))
		content = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			bordered(m.table.View()),
		)
	}

	if m.form != nil {
		titles := map[missionState]string{
			missionStateCreate: "New Mission",
			missionStateAssign: "Assign Cat",
			missionStateDelete: "Delete Mission",
			missionStateNotes:  "Edit Notes",
		}
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(titles[m.state], m.form.View()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m MissionsModel) targetsView() string {
	mission := m.current

	status := "In progress"
	if mission.IsComplete {
		status = "Complete since " + FormatTime(mission.CompletedAt)
	}

	agent := "Unassigned"
	if mission.Cat != nil {
		agent = mission.Cat.Name
	}

	header := fmt.Sprintf("Mission %s  %s  %s", activeStyle(ShortID(mission.ID)), agent, status)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		bordered(m.targets.View()),
	)
}

func bordered(s string) string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(s)
}

func (m *MissionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.missions))
	for _, ms := range m.missions {
		agent := "-"
		if ms.Cat != nil {
			agent = ms.Cat.Name
		}

		done := 0
		for _, t := range ms.Targets {
			if t.IsComplete {
				done++
			}
		}

		status := "Open"
		if ms.IsComplete {
			status = "Complete"
		}

		rows = append(rows, table.Row{
			ShortID(ms.ID),
			agent,
			fmt.Sprintf("%d/%d", done, len(ms.Targets)),
			status,
			FormatDate(ms.CreatedAt),
		})
	}

	m.table.SetRows(rows)
}

func (m *MissionsModel) refreshTargets() {
	if m.current == nil {
		m.targets.SetRows(nil)
		return
	}

	rows := make([]table.Row, 0, len(m.current.Targets))
	for _, t := range m.current.Targets {
		done := ""
		if t.IsComplete {
			done = "✓"
		}

		notes := ""
		if t.Notes != nil {
			notes = strings.ReplaceAll(*t.Notes, "\n", " ")
		}

		rows = append(rows, table.Row{t.Name, t.Country, done, notes})
	}

	m.targets.SetRows(rows)
}

// Messages

type loadMissionsMsg struct {
	missions []*agency.Mission
	total    int
	err      error
}

func (m MissionsModel) loadMissionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		missions, total, err := m.svc.ListMissions(ctx, agency.Page{Limit: agency.MaxPageLimit})

		return loadMissionsMsg{missions: missions, total: total, err: err}
	}
}

type missionLoadedMsg struct {
	mission *agency.Mission
	err     error
}

func (m MissionsModel) loadMissionCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		mission, err := m.svc.GetMission(ctx, id)

		return missionLoadedMsg{mission: mission, err: err}
	}
}

type assignCandidatesMsg struct {
	cats []*agency.Cat
	err  error
}

func (m MissionsModel) loadCandidatesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cats, _, err := m.svc.ListCats(ctx, agency.Page{Limit: agency.MaxPageLimit})

		return assignCandidatesMsg{cats: cats, err: err}
	}
}

type missionSavedMsg struct {
	action string
	status string
	err    error
}

func (m MissionsModel) createCmd(targets []agency.TargetParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		mission, err := m.svc.CreateMission(ctx, targets)
		if err != nil {
			return missionSavedMsg{action: "create mission", err: err}
		}

		return missionSavedMsg{status: fmt.Sprintf("Created mission %s with %d targets", ShortID(mission.ID), len(mission.Targets))}
	}
}

func (m MissionsModel) assignCmd(mission *agency.Mission, rawCatID string) tea.Cmd {
	if mission == nil {
		return nil
	}

	return func() tea.Msg {
		catID, err := uuid.Parse(rawCatID)
		if err != nil {
			return missionSavedMsg{action: "assign cat", err: fmt.Errorf("%w: no cat selected", agency.ErrValidation)}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.svc.AssignCat(ctx, mission.ID, catID)
		if err != nil {
			return missionSavedMsg{action: "assign cat", err: err}
		}

		return missionSavedMsg{status: fmt.Sprintf("Mission %s assigned to %s", ShortID(updated.ID), updated.Cat.Name)}
	}
}

func (m MissionsModel) deleteCmd(mission *agency.Mission) tea.Cmd {
	if mission == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.DeleteMission(ctx, mission.ID); err != nil {
			return missionSavedMsg{action: "delete mission", err: err}
		}

		return missionSavedMsg{status: fmt.Sprintf("Deleted mission %s", ShortID(mission.ID))}
	}
}

func (m MissionsModel) toggleTargetCmd(target *agency.Target) tea.Cmd {
	complete := !target.IsComplete

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.svc.UpdateTarget(ctx, target.ID, agency.UpdateTargetParams{IsComplete: &complete})
		if err != nil {
			return missionSavedMsg{action: "update target", err: err}
		}

		state := "reopened"
		if updated.IsComplete {
			state = "completed"
		}

		return missionSavedMsg{status: fmt.Sprintf("Target %s %s", updated.Name, state)}
	}
}

func (m MissionsModel) notesCmd(target *agency.Target, notes string) tea.Cmd {
	if target == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		updated, err := m.svc.UpdateTarget(ctx, target.ID, agency.UpdateTargetParams{Notes: &notes})
		if err != nil {
			return missionSavedMsg{action: "edit notes", err: err}
		}

		return missionSavedMsg{status: fmt.Sprintf("Notes saved for %s", updated.Name)}
	}
}
