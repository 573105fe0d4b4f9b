package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/velore/contactbook/internal/domain"
	"github.com/velore/contactbook/internal/gateway"
	"github.com/velore/contactbook/internal/platform/logger"
	"github.com/velore/contactbook/internal/store"
	"github.com/velore/contactbook/internal/tui"
)

var version = "dev"

// CLI is the top-level command structure for contactctl.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	URL     string           `help:"Contactbook server URL." default:"http://localhost:8080" env:"CONTACTBOOK_URL"`
	Timeout int              `help:"Request timeout in seconds." default:"30"`

	Browse BrowseCmd `cmd:"" default:"1" help:"Browse contacts interactively."`
	List   ListCmd   `cmd:"" help:"Print contacts as JSON."`
	Add    AddCmd    `cmd:"" help:"Add a contact."`
	Remove RemoveCmd `cmd:"" help:"Remove a contact by id."`
}

// BrowseCmd opens the interactive contact list TUI.
type BrowseCmd struct{}

func (b *BrowseCmd) Run(cli *CLI) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("browse needs a terminal; use 'contactctl list' for plain output")
	}

	s, gw, err := buildStore(cli)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cli.timeout())
	defer cancel()
	initial, err := gw.List(ctx)
	if err != nil {
		return fmt.Errorf("fetch contacts: %w", err)
	}
	s.Hydrate(initial)

	p := tea.NewProgram(tui.NewModel(s, cli.timeout()), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// ListCmd prints the collection without the TUI.
type ListCmd struct{}

func (l *ListCmd) Run(cli *CLI) error {
	_, gw, err := buildStore(cli)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cli.timeout())
	defer cancel()
	contacts, err := gw.List(ctx)
	if err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(contacts)
}

// AddCmd creates a contact from flags.
type AddCmd struct {
	Name    string `help:"Contact name."`
	Email   string `help:"Contact email."`
	Twitter string `help:"Twitter handle."`
	Phone   string `help:"Phone number."`
}

func (a *AddCmd) Run(cli *CLI) error {
	s, _, err := buildStore(cli)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cli.timeout())
	defer cancel()
	created, err := s.Create(ctx, domain.Fields{
		Name:    a.Name,
		Email:   a.Email,
		Twitter: a.Twitter,
		Phone:   a.Phone,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created contact %d\n", created.ID)
	return nil
}

// RemoveCmd deletes a contact by id.
type RemoveCmd struct {
	ID int64 `arg:"" help:"Contact id."`
}

func (r *RemoveCmd) Run(cli *CLI) error {
	s, _, err := buildStore(cli)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cli.timeout())
	defer cancel()
	return s.Delete(ctx, domain.Contact{ID: r.ID})
}

func (cli *CLI) timeout() time.Duration {
	return time.Duration(cli.Timeout) * time.Second
}

func buildStore(cli *CLI) (*store.ContactStore, *gateway.Client, error) {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		return nil, nil, err
	}

	gw, err := gateway.New(log, gateway.Config{
		BaseURL: cli.URL,
		Timeout: cli.timeout(),
	})
	if err != nil {
		return nil, nil, err
	}
	return store.NewContactStore(gw, log), gw, nil
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("contactctl"),
		kong.Description("Terminal client for the contactbook server."),
		kong.Vars{"version": version},
	)
	if err := kctx.Run(cli); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
