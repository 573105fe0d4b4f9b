package realtime

import "github.com/velore/contactbook/internal/domain"

type EventKind string

const (
	EventContactCreated EventKind = "ContactCreated"
	EventContactUpdated EventKind = "ContactUpdated"
	EventContactDeleted EventKind = "ContactDeleted"
)

// Event describes one contact mutation. Count is the collection size after
// the mutation, so badge clients need not track the list themselves.
type Event struct {
	Kind    EventKind       `json:"kind"`
	Contact *domain.Contact `json:"contact,omitempty"`
	Count   int64           `json:"count"`
}
