package store

import (
	"context"
	"sync"

	"github.com/velore/contactbook/internal/domain"
	"github.com/velore/contactbook/internal/platform/logger"
)

// Gateway is the persistence client the store drives. Implemented by
// gateway.Client; tests substitute stubs.
type Gateway interface {
	Create(ctx context.Context, fields domain.Fields) (*domain.Contact, error)
	Update(ctx context.Context, id int64, fields domain.Fields) (*domain.Contact, error)
	Delete(ctx context.Context, id int64) error
}

// ContactStore holds the canonical ordered contact list for one session and
// broadcasts every change. All persistence-affecting mutations go through its
// methods, so a mutation is always paired with a notification.
//
// Save is status-tracked: the matching entry's Saving flag is raised before
// the update request and cleared when it resolves, success or not. Delete is
// optimistic and is not rolled back when the server call fails.
type ContactStore struct {
	// mu makes each local mutation (snapshot, change, publish) atomic. It is
	// never held across a gateway call, so other operations interleave at
	// network boundaries just as UI events do.
	mu       sync.Mutex
	log      *logger.Logger
	gw       Gateway
	contacts *Observable[[]domain.Contact]
	count    *Observable[int]
}

func NewContactStore(gw Gateway, baseLog *logger.Logger) *ContactStore {
	return &ContactStore{
		log:      baseLog.With("component", "ContactStore"),
		gw:       gw,
		contacts: NewObservable([]domain.Contact{}),
		count:    NewObservable(0),
	}
}

// Contacts is the collection observable. Subscribers receive the full list on
// every change.
func (s *ContactStore) Contacts() *Observable[[]domain.Contact] { return s.contacts }

// Count is derived from Contacts and re-published on every collection change.
func (s *ContactStore) Count() *Observable[int] { return s.count }

// Hydrate replaces the whole collection, normally once per session with the
// server-rendered initial list.
func (s *ContactStore) Hydrate(contacts []domain.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]domain.Contact, len(contacts))
	copy(list, contacts)
	s.publish(list)
}

// Create persists the draft and appends the server's representation only once
// the gateway call succeeds. A failed call leaves the collection untouched.
func (s *ContactStore) Create(ctx context.Context, draft domain.Fields) (*domain.Contact, error) {
	created, err := s.gw.Create(ctx, draft)
	if err != nil {
		s.log.Warn("create failed", "error", err)
		return nil, err
	}

	s.mu.Lock()
	list := s.snapshot()
	list = append(list, *created)
	s.publish(list)
	s.mu.Unlock()
	return created, nil
}

// Save pushes the entry's current fields to the server. The entry keeps its
// identity and position; only its transient Saving flag changes locally.
func (s *ContactStore) Save(ctx context.Context, contact domain.Contact) error {
	s.setSaving(contact.ID, true)
	_, err := s.gw.Update(ctx, contact.ID, domain.Fields{
		Name:    contact.Name,
		Email:   contact.Email,
		Twitter: contact.Twitter,
		Phone:   contact.Phone,
	})
	s.setSaving(contact.ID, false)
	if err != nil {
		s.log.Warn("save failed", "contact_id", contact.ID, "error", err)
	}
	return err
}

// Delete removes the matching entry immediately, then tells the server. A
// failed server call is reported but the local removal stands.
func (s *ContactStore) Delete(ctx context.Context, contact domain.Contact) error {
	s.mu.Lock()
	list := s.snapshot()
	for i := range list {
		if list[i].ID == contact.ID {
			list = append(list[:i], list[i+1:]...)
			s.publish(list)
			break
		}
	}
	s.mu.Unlock()

	if err := s.gw.Delete(ctx, contact.ID); err != nil {
		s.log.Warn("server delete failed, local removal kept", "contact_id", contact.ID, "error", err)
		return err
	}
	return nil
}

// SetFields applies an in-progress edit to the matching entry without
// persisting it. Save pushes the result to the server.
func (s *ContactStore) SetFields(id int64, fields domain.Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.snapshot()
	for i := range list {
		if list[i].ID == id {
			list[i].Name = fields.Name
			list[i].Email = fields.Email
			list[i].Twitter = fields.Twitter
			list[i].Phone = fields.Phone
			s.publish(list)
			return
		}
	}
}

// Get returns the entry with the given id, if present.
func (s *ContactStore) Get(id int64) (domain.Contact, bool) {
	for _, c := range s.contacts.Get() {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Contact{}, false
}

func (s *ContactStore) setSaving(id int64, saving bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.snapshot()
	for i := range list {
		if list[i].ID == id {
			list[i].Saving = saving
			s.publish(list)
			return
		}
	}
}

func (s *ContactStore) snapshot() []domain.Contact {
	current := s.contacts.Get()
	list := make([]domain.Contact, len(current))
	copy(list, current)
	return list
}

// publish updates contacts first, then the derived count, so count never
// leads the collection.
func (s *ContactStore) publish(list []domain.Contact) {
	s.contacts.Set(list)
	s.count.Set(len(list))
}
