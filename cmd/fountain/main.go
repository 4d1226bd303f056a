package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fountainhq/fountain/internal/store"
	"github.com/fountainhq/fountain/internal/tui"
	"github.com/fountainhq/fountain/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

const defaultAPIURL = "https://api.fountain.social"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// readToken returns the auth token using precedence: env var > file > empty.
func readToken(st *store.Store) string {
	if tok := os.Getenv("FOUNTAIN_TOKEN"); tok != "" {
		return tok
	}
	return st.ReadToken()
}

// newLogger writes structured logs to a file; stdout belongs to the TUI.
func newLogger(path string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func run() error {
	godotenv.Load() //nolint:errcheck // a missing .env is fine

	apiURL := os.Getenv("FOUNTAIN_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	st, err := store.Default()
	if err != nil {
		return err
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("fountain " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "login":
			return runLogin(apiURL, st)
		case "logout":
			return runLogout(st)
		}
	}

	token := readToken(st)
	if token == "" {
		printWelcome()
		return nil
	}

	log := newLogger(st.LogPath())
	defer log.Sync() //nolint:errcheck // best-effort flush on exit

	c := client.New(apiURL, token, log)
	// Only force re-login on actual auth failures (401), not transient errors.
	if _, err := c.GetMe(context.Background()); err != nil {
		if client.IsStatus(err, 401) {
			printWelcome()
			return nil
		}
		// Network/server error: launch the TUI anyway, it retries internally.
		log.Warn("initial profile check failed", zap.Error(err))
	}

	app := tui.NewApp(c, version)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// runLogin prompts for an access token, verifies it against the API, and
// saves it along with the profile it belongs to.
func runLogin(apiURL string, st *store.Store) error {
	fmt.Println("Paste your Fountain access token (from fountain.social/settings):")
	fmt.Print("> ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(line)
	if token == "" {
		return fmt.Errorf("no token entered")
	}

	c := client.New(apiURL, token, nil)
	me, err := c.GetMe(context.Background())
	if err != nil {
		if client.IsStatus(err, 401) {
			return fmt.Errorf("token rejected — check it and try again")
		}
		return fmt.Errorf("verify token: %w", err)
	}

	if err := st.WriteToken(token); err != nil {
		return err
	}
	if err := st.WriteProfile(*me); err != nil {
		fmt.Printf("Token saved, but caching your profile failed: %v\n", err)
		return nil
	}
	fmt.Printf("Signed in as @%s\n", me.Username)
	return nil
}

func runLogout(st *store.Store) error {
	if err := st.RemoveToken(); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("Already logged out.")
			return nil
		}
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func printWelcome() {
	fmt.Println(`
  F O U N T A I N

  A feed where every post is a drop: it lives for a while,
  likes add time, dislikes take it away, and when the clock
  runs out the drop settles into your balance.

  Get started:
    fountain login      save your access token
    fountain            open the feed

  Set FOUNTAIN_API_URL to point at another server.`)
}

func printHelp() {
	fmt.Println(`fountain — terminal client for the Fountain feed

Usage:
  fountain              open the feed (requires login)
  fountain login        save an access token
  fountain logout       clear your session
  fountain --version    show version

Environment:
  FOUNTAIN_API_URL      API base URL (default ` + defaultAPIURL + `)
  FOUNTAIN_TOKEN        access token (overrides the saved one)

Keys inside the TUI:
  1/2/3    switch tabs (Feed / Alerts / You)
  j/k      move    enter  open    n  new post
  l/d      like / dislike (in a post)
  c        comment    o  open first link
  h        help    q  quit`)
}
