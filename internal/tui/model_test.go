package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/velore/contactbook/internal/data/repos/testutil"
	"github.com/velore/contactbook/internal/domain"
	"github.com/velore/contactbook/internal/store"
)

type fakeGateway struct {
	nextID int64
}

func (g *fakeGateway) Create(_ context.Context, fields domain.Fields) (*domain.Contact, error) {
	g.nextID++
	return &domain.Contact{ID: g.nextID, Name: fields.Name}, nil
}

func (g *fakeGateway) Update(_ context.Context, id int64, fields domain.Fields) (*domain.Contact, error) {
	return &domain.Contact{ID: id, Name: fields.Name}, nil
}

func (g *fakeGateway) Delete(context.Context, int64) error { return nil }

func newTestModel(t *testing.T) (*Model, *store.ContactStore) {
	t.Helper()
	s := store.NewContactStore(&fakeGateway{}, testutil.Logger(t))
	return NewModel(s, time.Second), s
}

func drain(m *Model, msg tea.Msg) *Model {
	next, _ := m.Update(msg)
	return next.(*Model)
}

func TestModelShowsHydratedContactsAndCount(t *testing.T) {
	m, s := newTestModel(t)

	s.Hydrate([]domain.Contact{{ID: 1, Name: "Amy"}, {ID: 2, Name: "Bo"}})
	m = drain(m, storeChangedMsg{})

	view := m.View()
	if !strings.Contains(view, "Amy") || !strings.Contains(view, "Bo") {
		t.Fatalf("expected contacts in view:\n%s", view)
	}
	if !strings.Contains(view, "(2)") {
		t.Fatalf("expected count badge (2) in view:\n%s", view)
	}
}

func TestModelDeleteRemovesSelected(t *testing.T) {
	m, s := newTestModel(t)

	s.Hydrate([]domain.Contact{{ID: 1, Name: "Amy"}, {ID: 2, Name: "Bo"}})
	m = drain(m, storeChangedMsg{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m = next.(*Model)
	if cmd == nil {
		t.Fatalf("expected delete command")
	}
	msg := cmd()
	done, ok := msg.(opDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("unexpected delete outcome: %#v", msg)
	}

	m = drain(m, storeChangedMsg{})
	if len(s.Contacts().Get()) != 1 || s.Count().Get() != 1 {
		t.Fatalf("expected one contact left, got %d", s.Count().Get())
	}
	if !strings.Contains(m.View(), "(1)") {
		t.Fatalf("expected badge (1) after delete:\n%s", m.View())
	}
}

func TestModelCreateAppendsEmptyContact(t *testing.T) {
	m, s := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m = next.(*Model)
	if cmd == nil {
		t.Fatalf("expected create command")
	}
	if msg := cmd(); msg.(opDoneMsg).err != nil {
		t.Fatalf("create failed: %v", msg.(opDoneMsg).err)
	}

	m = drain(m, storeChangedMsg{})
	list := s.Contacts().Get()
	if len(list) != 1 || list[0].ID == 0 {
		t.Fatalf("expected one created contact with id, got %+v", list)
	}
}

func TestModelEditFlowSavesThroughStore(t *testing.T) {
	m, s := newTestModel(t)

	s.Hydrate([]domain.Contact{{ID: 1, Name: "Amy"}})
	m = drain(m, storeChangedMsg{})

	m = drain(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	if !m.editing {
		t.Fatalf("expected editing mode")
	}

	m.inputs[0].SetValue("Amy W")
	m.inputs[1].SetValue("amyw@example.com")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(*Model)
	if m.editing {
		t.Fatalf("expected editing mode exited")
	}
	if cmd == nil {
		t.Fatalf("expected save command")
	}

	// SetFields lands before Save is issued.
	got, _ := s.Get(1)
	if got.Name != "Amy W" || got.Email != "amyw@example.com" {
		t.Fatalf("expected edit applied to store entry, got %+v", got)
	}

	if msg := cmd(); msg.(opDoneMsg).err != nil {
		t.Fatalf("save failed: %v", msg.(opDoneMsg).err)
	}
	got, _ = s.Get(1)
	if got.Saving {
		t.Fatalf("expected Saving cleared after save")
	}
}

func TestModelQuitUnsubscribes(t *testing.T) {
	m, s := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(*Model)
	if cmd == nil {
		t.Fatalf("expected quit command")
	}

	// Store changes after quit must not block publishers.
	s.Hydrate([]domain.Contact{{ID: 1}})
	s.Hydrate([]domain.Contact{})
	_ = m
}
