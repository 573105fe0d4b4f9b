package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	contactrepo "github.com/velore/contactbook/internal/data/repos/contact"
	"github.com/velore/contactbook/internal/data/repos/testutil"
	"github.com/velore/contactbook/internal/domain"
	"github.com/velore/contactbook/internal/gateway"
	"github.com/velore/contactbook/internal/http/handlers"
	"github.com/velore/contactbook/internal/platform/logger"
	"github.com/velore/contactbook/internal/realtime"
	"github.com/velore/contactbook/internal/realtime/bus"
	"github.com/velore/contactbook/internal/server"
	"github.com/velore/contactbook/internal/services"
)

func newTestServer(t *testing.T) (*httptest.Server, *logger.Logger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	t.Cleanup(func() {
		db.Exec("DELETE FROM contact")
	})
	log := testutil.Logger(t)

	repo := contactrepo.NewContactRepo(db, log)
	eventBus := bus.NewLocalBus(log)
	svc := services.NewContactService(db, log, repo, eventBus)
	hub := realtime.NewHub(log)

	router := server.NewRouter(server.RouterConfig{
		Log:            log,
		AllowOrigins:   []string{"http://localhost"},
		ContactHandler: handlers.NewContactHandler(svc),
		PageHandler:    handlers.NewPageHandler(svc),
		EventsHandler:  handlers.NewEventsHandler(log, hub),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, log
}

func newGateway(t *testing.T, srv *httptest.Server, log *logger.Logger) *gateway.Client {
	t.Helper()
	c, err := gateway.New(log, gateway.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("gateway.New: %v", err)
	}
	return c
}

// Drives the full JSON contract through the real router with the gateway
// client, the same pairing the terminal client uses.
func TestContactEndpoints(t *testing.T) {
	srv, log := newTestServer(t)
	gw := newGateway(t, srv, log)
	ctx := context.Background()

	created, err := gw.Create(ctx, domain.Fields{Name: "Amy", Email: "amy@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.Name != "Amy" {
		t.Fatalf("create: unexpected result %+v", created)
	}

	list, err := gw.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list: unexpected result %+v", list)
	}

	updated, err := gw.Update(ctx, created.ID, domain.Fields{Name: "Amy W", Phone: "555-0101"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Amy W" || updated.Phone != "555-0101" {
		t.Fatalf("update: unexpected result %+v", updated)
	}

	if err := gw.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, err = gw.List(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list after delete, got %+v", list)
	}
}

func TestCreateRejectsMalformedEmail(t *testing.T) {
	srv, log := newTestServer(t)
	gw := newGateway(t, srv, log)

	_, err := gw.Create(context.Background(), domain.Fields{Name: "Bo", Email: "nope"})
	reqErr, ok := err.(*gateway.RequestError)
	if !ok {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", reqErr.Status)
	}
}

func TestUpdateMissingContactIs404(t *testing.T) {
	srv, log := newTestServer(t)
	gw := newGateway(t, srv, log)

	_, err := gw.Update(context.Background(), 99999, domain.Fields{Name: "Ghost"})
	reqErr, ok := err.(*gateway.RequestError)
	if !ok || reqErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404 RequestError, got %v", err)
	}
}

func TestContactsPageEmbedsHydration(t *testing.T) {
	srv, log := newTestServer(t)
	gw := newGateway(t, srv, log)

	if _, err := gw.Create(context.Background(), domain.Fields{Name: "Amy"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	resp, err := http.Get(srv.URL + "/contacts")
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %s", ct)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	body := string(raw)
	if !strings.Contains(body, `id="hydration"`) || !strings.Contains(body, `"Amy"`) {
		t.Fatalf("expected hydration payload with Amy, got:\n%s", body)
	}
}

func TestHealthcheck(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthcheck")
	if err != nil {
		t.Fatalf("get healthcheck: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
