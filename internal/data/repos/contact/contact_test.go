package contact

import (
	"context"
	"testing"

	"github.com/velore/contactbook/internal/data/repos/testutil"
	"github.com/velore/contactbook/internal/domain"
)

func TestContactRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewContactRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*domain.Contact{
		{Name: "Amy", Email: "amy@example.com"},
		{Name: "Bo", Twitter: "@bo"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("Create: expected 2 contacts, got %d", len(created))
	}
	if created[0].ID == 0 || created[1].ID == 0 {
		t.Fatalf("Create: expected assigned ids, got %d and %d", created[0].ID, created[1].ID)
	}

	got, err := repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Amy" || got.Email != "amy@example.com" {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	list, err := repo.List(ctx, tx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List: expected 2 contacts, got %d", len(list))
	}
	if list[0].ID != created[0].ID || list[1].ID != created[1].ID {
		t.Fatalf("List: expected insertion order, got %+v", list)
	}

	if err := repo.UpdateFields(ctx, tx, created[0].ID, domain.Fields{
		Name:  "Amy W",
		Email: "amyw@example.com",
		Phone: "555-0101",
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if got.Name != "Amy W" || got.Phone != "555-0101" {
		t.Fatalf("UpdateFields: unexpected result: %+v", got)
	}

	count, err := repo.Count(ctx, tx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Fatalf("Count: expected 2, got %d", count)
	}

	if err := repo.Delete(ctx, tx, created[1].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	count, err = repo.Count(ctx, tx)
	if err != nil {
		t.Fatalf("Count after delete: %v", err)
	}
	if count != 1 {
		t.Fatalf("Count after delete: expected 1, got %d", count)
	}

	if _, err := repo.GetByID(ctx, tx, created[1].ID); err == nil {
		t.Fatalf("GetByID: expected error for deleted contact")
	}
}
