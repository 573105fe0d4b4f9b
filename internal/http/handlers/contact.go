package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/velore/contactbook/internal/domain"
	"github.com/velore/contactbook/internal/http/response"
	"github.com/velore/contactbook/internal/services"
)

type ContactHandler struct {
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// GET /contacts.json
func (ch *ContactHandler) List(c *gin.Context) {
	contacts, err := ch.contactService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if contacts == nil {
		contacts = []*domain.Contact{}
	}
	c.JSON(http.StatusOK, contacts)
}

// POST /contacts.json
// body: { "contact": { "name": "...", "email": "...", "twitter": "...", "phone": "..." } }
func (ch *ContactHandler) Create(c *gin.Context) {
	var req struct {
		Contact domain.Fields `json:"contact"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	created, err := ch.contactService.Create(c.Request.Context(), req.Contact)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /contacts/{id}.json
func (ch *ContactHandler) Update(c *gin.Context) {
	id, err := contactID(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_contact_id", err)
		return
	}

	var req struct {
		Contact domain.Fields `json:"contact"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	updated, err := ch.contactService.Update(c.Request.Context(), id, req.Contact)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /contacts/{id}.json
func (ch *ContactHandler) Delete(c *gin.Context) {
	id, err := contactID(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_contact_id", err)
		return
	}

	if err := ch.contactService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// The id path segment carries a ".json" suffix, Rails-style.
func contactID(c *gin.Context) (int64, error) {
	raw := strings.TrimSuffix(c.Param("id"), ".json")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid contact id %q", c.Param("id"))
	}
	return id, nil
}
