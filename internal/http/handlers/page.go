package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velore/contactbook/internal/domain"
	"github.com/velore/contactbook/internal/http/response"
	"github.com/velore/contactbook/internal/services"
)

var contactsPage = template.Must(template.New("contacts").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>Contacts</title>
</head>
<body>
  <div id="contact-list" data-mount="contact-list"></div>
  <div id="contact-badge" data-mount="contact-badge"></div>
  <div id="contact-new" data-mount="contact-new"></div>
  <script id="hydration" type="application/json">{{.Hydration}}</script>
</body>
</html>
`))

type PageHandler struct {
	contactService services.ContactService
}

func NewPageHandler(contactService services.ContactService) *PageHandler {
	return &PageHandler{contactService: contactService}
}

// GET /contacts
// Serves the page the UI fragments mount on, with the initial contact list
// embedded as a hydration payload.
func (ph *PageHandler) Contacts(c *gin.Context) {
	contacts, err := ph.contactService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if contacts == nil {
		contacts = []*domain.Contact{}
	}

	hydration, err := json.Marshal(contacts)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "hydration_encode_failed", err)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := contactsPage.Execute(c.Writer, gin.H{"Hydration": template.JS(hydration)}); err != nil {
		_ = c.Error(err)
	}
}
