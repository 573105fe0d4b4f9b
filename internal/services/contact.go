package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	contactrepo "github.com/velore/contactbook/internal/data/repos/contact"
	"github.com/velore/contactbook/internal/domain"
	"github.com/velore/contactbook/internal/platform/apierr"
	"github.com/velore/contactbook/internal/platform/logger"
	"github.com/velore/contactbook/internal/realtime"
	"github.com/velore/contactbook/internal/realtime/bus"
)

type ContactService interface {
	List(ctx context.Context) ([]*domain.Contact, error)
	Create(ctx context.Context, fields domain.Fields) (*domain.Contact, error)
	Update(ctx context.Context, id int64, fields domain.Fields) (*domain.Contact, error)
	Delete(ctx context.Context, id int64) error
}

type contactService struct {
	db          *gorm.DB
	log         *logger.Logger
	contactRepo contactrepo.ContactRepo
	eventBus    bus.Bus
}

func NewContactService(db *gorm.DB, baseLog *logger.Logger, contactRepo contactrepo.ContactRepo, eventBus bus.Bus) ContactService {
	return &contactService{
		db:          db,
		log:         baseLog.With("service", "ContactService"),
		contactRepo: contactRepo,
		eventBus:    eventBus,
	}
}

func (cs *contactService) List(ctx context.Context) ([]*domain.Contact, error) {
	contacts, err := cs.contactRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "contact_list_failed", err)
	}
	return contacts, nil
}

func (cs *contactService) Create(ctx context.Context, fields domain.Fields) (*domain.Contact, error) {
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	created, err := cs.contactRepo.Create(ctx, nil, []*domain.Contact{{
		Name:    strings.TrimSpace(fields.Name),
		Email:   strings.TrimSpace(fields.Email),
		Twitter: strings.TrimSpace(fields.Twitter),
		Phone:   strings.TrimSpace(fields.Phone),
	}})
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "contact_create_failed", err)
	}
	contact := created[0]

	cs.publish(ctx, realtime.EventContactCreated, contact)
	cs.log.Info("contact created", "contact_id", contact.ID)
	return contact, nil
}

func (cs *contactService) Update(ctx context.Context, id int64, fields domain.Fields) (*domain.Contact, error) {
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	if _, err := cs.contactRepo.GetByID(ctx, nil, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.New(http.StatusNotFound, "contact_not_found", fmt.Errorf("contact %d not found", id))
		}
		return nil, apierr.New(http.StatusInternalServerError, "contact_lookup_failed", err)
	}

	if err := cs.contactRepo.UpdateFields(ctx, nil, id, domain.Fields{
		Name:    strings.TrimSpace(fields.Name),
		Email:   strings.TrimSpace(fields.Email),
		Twitter: strings.TrimSpace(fields.Twitter),
		Phone:   strings.TrimSpace(fields.Phone),
	}); err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "contact_update_failed", err)
	}

	contact, err := cs.contactRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "contact_lookup_failed", err)
	}

	cs.publish(ctx, realtime.EventContactUpdated, contact)
	return contact, nil
}

func (cs *contactService) Delete(ctx context.Context, id int64) error {
	contact, err := cs.contactRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.New(http.StatusNotFound, "contact_not_found", fmt.Errorf("contact %d not found", id))
		}
		return apierr.New(http.StatusInternalServerError, "contact_lookup_failed", err)
	}

	if err := cs.contactRepo.Delete(ctx, nil, id); err != nil {
		return apierr.New(http.StatusInternalServerError, "contact_delete_failed", err)
	}

	cs.publish(ctx, realtime.EventContactDeleted, contact)
	cs.log.Info("contact deleted", "contact_id", id)
	return nil
}

func validateFields(fields domain.Fields) error {
	if err := domain.ValidateEmail(fields.Email); err != nil {
		return apierr.New(http.StatusUnprocessableEntity, "invalid_email", err)
	}
	return nil
}

func (cs *contactService) publish(ctx context.Context, kind realtime.EventKind, contact *domain.Contact) {
	if cs.eventBus == nil {
		return
	}
	count, err := cs.contactRepo.Count(ctx, nil)
	if err != nil {
		cs.log.Warn("count for event failed", "error", err)
	}
	if err := cs.eventBus.Publish(ctx, realtime.Event{
		Kind:    kind,
		Contact: contact,
		Count:   count,
	}); err != nil {
		cs.log.Warn("event publish failed", "kind", kind, "error", err)
	}
}
