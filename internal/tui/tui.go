// Package tui is the terminal roster view: the list of students, the record
// form and the status line, driven by a roster.Controller.
//
// Every network call runs as a tea.Cmd. Its result comes back as a message
// and the view re-renders from a fresh snapshot, so the store is only ever
// read on the program's goroutine.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aanand-mishra/students-roster/internal/form"
	"github.com/aanand-mishra/students-roster/internal/roster"
	"github.com/aanand-mishra/students-roster/internal/types"
)

const (
	focusList = iota
	focusName
	focusAge
	focusExtra
	focusCount
)

// resultMsg reports a settled controller call.
type resultMsg struct {
	op  string
	err error
}

// Model is the bubbletea model of a roster.
type Model struct {
	ctx    context.Context
	ctrl   *roster.Controller
	state  roster.State
	styles Styles

	inputs [3]textinput.Model
	focus  int
	cursor int

	// pending counts dispatched calls that have not reported back yet.
	pending int
	width   int
}

// New builds the model. The initial load is issued by Init.
func New(ctx context.Context, ctrl *roster.Controller) Model {
	v := ctrl.Variant()

	placeholders := [3]string{"Nom", "Âge", v.ExtraLabel}
	var inputs [3]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = "> "
		ti.CharLimit = 100
		inputs[i] = ti
	}

	return Model{
		ctx:     ctx,
		ctrl:    ctrl,
		state:   ctrl.State(),
		styles:  DefaultStyles(),
		inputs:  inputs,
		pending: 1, // the load Init issues
	}
}

// Init fetches the roster.
func (m Model) Init() tea.Cmd {
	return m.call("load", m.ctrl.Load)
}

func (m Model) call(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return resultMsg{op: op, err: fn(ctx)}
	}
}

// busy reports whether controls are disabled: only a guarded variant
// disables them, and only while a call is in flight.
func (m Model) busy() bool {
	return m.ctrl.Variant().Guarded && (m.pending > 0 || m.state.Loading)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		for i := range m.inputs {
			m.inputs[i].Width = max(msg.Width-6, 10)
		}
		return m, nil

	case resultMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.refresh(true)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus == focusList {
			return m.updateList(msg)
		}
		return m.updateForm(msg)
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Students)-1 {
			m.cursor++
		}
	case "tab":
		return m.setFocus(focusName)
	case "shift+tab":
		return m.setFocus(focusExtra)
	case "r":
		if m.busy() {
			return m, nil
		}
		m.pending++
		return m, m.call("load", m.ctrl.Load)
	case "d":
		st, ok := m.selected()
		if !ok || m.busy() {
			return m, nil
		}
		m.pending++
		id := st.ID
		return m, m.call("delete", func(ctx context.Context) error {
			return m.ctrl.Delete(ctx, id)
		})
	case "e":
		st, ok := m.selected()
		if !ok || !m.ctrl.Variant().Editable {
			return m, nil
		}
		_ = m.ctrl.BeginEdit(st.ID)
		m.refresh(true)
		return m.setFocus(focusName)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab", "up":
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case "esc":
		if m.state.IsEditing() {
			_ = m.ctrl.CancelEdit()
			m.refresh(true)
		}
		return m.setFocus(focusList)
	case "enter":
		if m.busy() {
			return m, nil
		}
		m.ctrl.SetFields(m.fields())
		m.pending++
		return m, m.call("submit", m.ctrl.Submit)
	}

	i := m.focus - focusName
	var cmd tea.Cmd
	m.inputs[i], cmd = m.inputs[i].Update(msg)
	m.ctrl.SetFields(m.fields())
	return m, cmd
}

func (m Model) setFocus(f int) (tea.Model, tea.Cmd) {
	m.focus = f
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == f-focusName {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, cmd
}

// refresh re-reads the store. With syncForm the inputs take the store's
// form values, which is how a reset or an edit reaches the screen.
func (m *Model) refresh(syncForm bool) {
	m.state = m.ctrl.State()
	if m.cursor >= len(m.state.Students) {
		m.cursor = max(len(m.state.Students)-1, 0)
	}
	if syncForm {
		m.inputs[0].SetValue(m.state.Form.Name)
		m.inputs[1].SetValue(m.state.Form.Age)
		m.inputs[2].SetValue(m.state.Form.Extra)
	}
}

func (m Model) fields() form.Fields {
	return form.Fields{
		Name:  m.inputs[0].Value(),
		Age:   m.inputs[1].Value(),
		Extra: m.inputs[2].Value(),
	}
}

func (m Model) selected() (types.Student, bool) {
	if len(m.state.Students) == 0 {
		return types.Student{}, false
	}
	return m.state.Students[m.cursor], true
}

// View renders the roster, the form and the status line.
func (m Model) View() string {
	v := m.ctrl.Variant()
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render(v.Title))
	b.WriteString("\n")

	if m.state.Empty() {
		b.WriteString(s.Empty.Render(roster.MsgEmpty))
		b.WriteString("\n")
	}
	for i, st := range m.state.Students {
		line := fmt.Sprintf("%s %s", st.Name, s.Detail.Render(fmt.Sprintf("- %d ans - %s", st.Age, v.Extra(st))))
		if i == m.cursor && m.focus == focusList {
			b.WriteString(s.Selected.Render("▸ " + line))
		} else {
			b.WriteString(s.Row.Render(line))
		}
		b.WriteString("\n")
	}

	heading := "Ajouter un étudiant"
	submit := "Ajouter"
	if m.state.IsEditing() {
		heading = "Modifier un étudiant"
		submit = "Mettre à jour"
	}
	b.WriteString(s.Heading.Render(heading))
	b.WriteString("\n")
	for _, in := range m.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	button := "[entrée] " + submit
	if m.busy() {
		button = s.Disabled.Render(button)
	}
	b.WriteString("\n" + button)
	if m.state.IsEditing() {
		b.WriteString("   [échap] Annuler")
	}
	b.WriteString("\n")

	if m.busy() {
		b.WriteString(s.Status.Render("Chargement..."))
		b.WriteString("\n")
	}
	if m.state.Err != "" {
		b.WriteString(s.Error.Render(m.state.Err))
		b.WriteString("\n")
	}

	b.WriteString(s.Help.Render(m.help()))
	return b.String()
}

func (m Model) help() string {
	if m.focus != focusList {
		return "tab: champ suivant • entrée: valider • échap: liste • ctrl+c: quitter"
	}
	keys := []string{"↑/↓: choisir", "tab: formulaire"}
	if m.ctrl.Variant().Editable {
		keys = append(keys, "e: Modifier")
	}
	keys = append(keys, "d: Supprimer", "r: recharger", "q: quitter")
	return strings.Join(keys, " • ")
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, ctrl *roster.Controller) error {
	p := tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
