// clmctl is a terminal front end for the ContractPro backend: the same
// session, navigation and contract workflow surface as the web client.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	contractpro "github.com/wellnessvoyage60-gif/contract-management-app"
	"github.com/wellnessvoyage60-gif/contract-management-app/pkg/access"
	"github.com/wellnessvoyage60-gif/contract-management-app/pkg/config"
	"github.com/wellnessvoyage60-gif/contract-management-app/pkg/navigation"
	"github.com/wellnessvoyage60-gif/contract-management-app/pkg/session"
)

const usageText = `usage: clmctl <command> [flags]

session:
  login -username <name> [-password <pw>]   authenticate and persist the session
  logout                                    clear the persisted session
  whoami                                    show the current principal
  nav                                       show the menu for the current role

contracts:
  contracts list [-limit n] [-q text] [-status s]
  contracts show -id <id>
  contracts status -id <id> -to <status>
  contracts delete -id <id> [-yes]
  contracts upload -title t -category c -reviewer id -file path [...]
  contracts download -id <id> [-out path]

other:
  dashboard                                 aggregate counts by status
  archive   list|upload|download|delete
  reports   summary|export
  users     list|sync-ad
  vendor    create|profile|change-password|contracts|feedback
  editor    config -id <id>
`

type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	store  *session.Store
	client *contractpro.Client
	guard  *access.Guard
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "clmctl: bad configuration:", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	store, err := session.Open(cfg.StateFile, session.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("open session store")
	}

	a := &app{
		cfg:   cfg,
		log:   log,
		store: store,
		client: contractpro.NewClient(cfg.BaseURL, store,
			contractpro.WithLogger(log),
			contractpro.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout})),
		guard: access.New(store),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, access.ErrNotAuthenticated) {
			fmt.Fprintln(os.Stderr, "clmctl: not logged in — run: clmctl login -username <name>")
			os.Exit(1)
		}
		var apiErr *contractpro.APIError
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			fmt.Fprintln(os.Stderr, "clmctl:", apiErr.Detail)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "clmctl:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.cmdLogout()
	case "whoami":
		return a.cmdWhoami()
	case "nav":
		return a.cmdNav()
	case "dashboard":
		return a.cmdDashboard(ctx)
	case "contracts":
		return a.runContracts(ctx, args)
	case "archive":
		return a.runArchive(ctx, args)
	case "reports":
		return a.runReports(ctx, args)
	case "users":
		return a.runUsers(ctx, args)
	case "vendor":
		return a.runVendor(ctx, args)
	case "editor":
		return a.runEditor(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usageText)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

// confirm asks before a destructive action. Anything but an explicit yes
// is a no.
func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(sc.Text()))
	return answer == "y" || answer == "yes"
}

func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return "", fmt.Errorf("no input")
	}
	return strings.TrimSpace(sc.Text()), nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	username := fs.String("username", "", "account name")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return fmt.Errorf("-username is required")
	}
	pw := *password
	if pw == "" {
		var err error
		if pw, err = promptLine("password: "); err != nil {
			return err
		}
	}
	p, err := a.store.Login(ctx, a.client, *username, pw)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", p.Username, p.Role)
	return nil
}

func (a *app) cmdLogout() error {
	if err := a.store.Logout(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func (a *app) cmdWhoami() error {
	p, ok := a.store.Current()
	if !ok {
		fmt.Println("not logged in")
		return nil
	}
	return printJSON(p)
}

func (a *app) cmdNav() error {
	var principal *session.Principal
	if p, ok := a.store.Current(); ok {
		principal = &p
	}
	entries := navigation.VisibleEntries(principal)
	if len(entries) == 0 {
		fmt.Println("no pages available — log in first")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%-16s %s\n", e.Label, e.Path)
	}
	return nil
}

func (a *app) cmdDashboard(ctx context.Context) error {
	if err := a.guard.Require(); err != nil {
		return err
	}
	stats, err := a.client.DashboardStats(ctx)
	if err != nil {
		return err
	}
	return printJSON(stats)
}
