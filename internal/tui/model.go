package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/velore/contactbook/internal/domain"
	"github.com/velore/contactbook/internal/store"
)

// storeChangedMsg signals that the shared store published a new value. The
// model re-reads current state from the store rather than carrying payloads,
// so dropped signals coalesce harmlessly.
type storeChangedMsg struct{}

// opDoneMsg reports the outcome of a create/save/delete issued to the store.
type opDoneMsg struct {
	op  string
	err error
}

const fieldCount = 4

// Model renders the contact list, a live count badge, and inline editing.
// All three read from the shared ContactStore; none of them talks to the
// gateway directly.
type Model struct {
	store   *store.ContactStore
	timeout time.Duration

	contacts []domain.Contact
	count    int
	cursor   int

	editing bool
	editID  int64
	inputs  [fieldCount]textinput.Model
	focus   int

	status string
	errMsg string

	dirty chan struct{}
	unsub []func()
	width int
}

func NewModel(s *store.ContactStore, timeout time.Duration) *Model {
	m := &Model{
		store:   s,
		timeout: timeout,
		dirty:   make(chan struct{}, 1),
	}

	labels := [fieldCount]string{"Name", "Email", "Twitter", "Phone"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = labels[i] + ": "
		ti.CharLimit = 120
		m.inputs[i] = ti
	}

	// The count badge and list are independent subscribers; both funnel into
	// one coalesced dirty signal.
	m.unsub = append(m.unsub, s.Contacts().Subscribe(func([]domain.Contact) { m.signal() }))
	m.unsub = append(m.unsub, s.Count().Subscribe(func(int) { m.signal() }))
	m.refresh()
	return m
}

func (m *Model) signal() {
	select {
	case m.dirty <- struct{}{}:
	default:
	}
}

func (m *Model) refresh() {
	m.contacts = m.store.Contacts().Get()
	m.count = m.store.Count().Get()
	if m.cursor >= len(m.contacts) {
		m.cursor = len(m.contacts) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.dirty
		return storeChangedMsg{}
	}
}

func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case storeChangedMsg:
		m.refresh()
		return m, m.waitForChange()

	case opDoneMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("%s failed: %v", msg.op, msg.err)
		} else {
			m.errMsg = ""
			m.status = msg.op + " ok"
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		for _, unsub := range m.unsub {
			unsub()
		}
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.contacts)-1 {
			m.cursor++
		}

	case "n":
		m.status = "creating..."
		return m, m.createCmd()

	case "e", "enter":
		if m.cursor < len(m.contacts) {
			m.startEditing(m.contacts[m.cursor])
		}

	case "d":
		if m.cursor < len(m.contacts) {
			target := m.contacts[m.cursor]
			m.status = "deleting..."
			return m, m.deleteCmd(target)
		}
	}
	return m, nil
}

func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil

	case "tab", "shift+tab":
		if msg.String() == "tab" {
			m.focus = (m.focus + 1) % fieldCount
		} else {
			m.focus = (m.focus + fieldCount - 1) % fieldCount
		}
		for i := range m.inputs {
			if i == m.focus {
				m.inputs[i].Focus()
			} else {
				m.inputs[i].Blur()
			}
		}
		return m, nil

	case "enter":
		fields := domain.Fields{
			Name:    strings.TrimSpace(m.inputs[0].Value()),
			Email:   strings.TrimSpace(m.inputs[1].Value()),
			Twitter: strings.TrimSpace(m.inputs[2].Value()),
			Phone:   strings.TrimSpace(m.inputs[3].Value()),
		}
		// Edits land in the store's entry first; Save then pushes that
		// entry's fields to the server.
		m.store.SetFields(m.editID, fields)
		m.editing = false
		m.status = "saving..."
		return m, m.saveCmd(m.editID)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) startEditing(contact domain.Contact) {
	m.editing = true
	m.editID = contact.ID
	values := [fieldCount]string{contact.Name, contact.Email, contact.Twitter, contact.Phone}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[0].Focus()
}

func (m *Model) createCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		_, err := m.store.Create(ctx, domain.Fields{})
		return opDoneMsg{op: "create", err: err}
	}
}

func (m *Model) saveCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		contact, ok := m.store.Get(id)
		if !ok {
			return opDoneMsg{op: "save", err: fmt.Errorf("contact %d no longer in list", id)}
		}
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return opDoneMsg{op: "save", err: m.store.Save(ctx, contact)}
	}
}

func (m *Model) deleteCmd(contact domain.Contact) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()
		return opDoneMsg{op: "delete", err: m.store.Delete(ctx, contact)}
	}
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Contacts"))
	b.WriteString("  ")
	b.WriteString(badgeStyle.Render(fmt.Sprintf("(%d)", m.count)))
	b.WriteString("\n\n")

	if m.editing {
		for i := range m.inputs {
			b.WriteString(m.inputs[i].View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab: next field • enter: save • esc: cancel"))
		b.WriteString("\n")
		return b.String()
	}

	if len(m.contacts) == 0 {
		b.WriteString(mutedStyle.Render("no contacts yet"))
		b.WriteString("\n")
	}
	for i, contact := range m.contacts {
		line := contactLine(contact)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(mutedStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("n: new • e: edit • d: delete • q: quit"))
	b.WriteString("\n")
	return b.String()
}

func contactLine(contact domain.Contact) string {
	name := contact.Name
	if name == "" {
		name = "(unnamed)"
	}
	line := fmt.Sprintf("%-24s %-28s %-16s %s", name, contact.Email, contact.Twitter, contact.Phone)
	if contact.Saving {
		line += " " + savingStyle.Render("saving…")
	}
	return strings.TrimRight(line, " ")
}
