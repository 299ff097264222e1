package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wetube/tube/internal/api"
	"github.com/wetube/tube/internal/config"
	"github.com/wetube/tube/internal/log"
	"github.com/wetube/tube/internal/service"
	"github.com/wetube/tube/internal/session"
	"github.com/wetube/tube/internal/store"
	"github.com/wetube/tube/internal/tui"
	"github.com/wetube/tube/internal/tui/styles"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("tube %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting tube", "version", Version)

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	st, err := store.Open(config.DataDir())
	if err != nil {
		logger.Warn("state store unavailable, running memory-only", "error", err)
		st, _ = store.Open("")
	}
	defer st.Close()

	sess := session.NewStore(st, logger)
	layout := session.NewLayoutStore(st, logger)

	client := api.NewClient(cfg.Server.URL, cfg.Server.APIKey, cfg.Server.ClientID, sess.Token, logger)
	catalog := service.NewCatalog(client, logger)

	model := tui.NewModel(client, catalog, sess, layout, cfg.UI.PageSize, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	// A 401 means the saved token is dead: drop the session and tell the
	// running UI so guarded screens can bail out.
	client.SetUnauthorizedHook(func() {
		sess.Logout()
		catalog.InvalidateAll()
		p.Send(tui.SessionExpiredMsg{})
	})

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Tube!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	var serverURL string
	for {
		fmt.Print("Enter your server URL (e.g., http://localhost:4000/api): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL = strings.TrimSpace(input)

		if serverURL == "" {
			fmt.Println("Server URL cannot be empty. Please try again.")
			continue
		}

		fmt.Println()
		if err := probeServerWithSpinner(serverURL, cfg.Server.APIKey, cfg.Server.ClientID, logger); err != nil {
			fmt.Printf("\n✗ Could not reach server: %v\n", err)
			fmt.Println("Please check the URL and try again.")
			fmt.Println()
			continue
		}
		break
	}

	cfg.Server.URL = serverURL

	fmt.Print("Client key (leave empty if the server does not require one): ")
	apiKey, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	cfg.Server.APIKey = strings.TrimSpace(apiKey)

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	// Optional sign-in so the first real launch starts authenticated
	fmt.Println()
	fmt.Print("Sign in now? [y/N]: ")
	answer, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if a := strings.ToLower(strings.TrimSpace(answer)); a == "y" || a == "yes" {
		if err := runSigninFlow(cfg, reader, logger); err != nil {
			fmt.Printf("\n✗ Sign-in failed: %v\n", err)
			fmt.Println("You can sign in later from inside the app.")
		}
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run tube again to start the application.")

	return nil
}

// runSigninFlow authenticates on the terminal and seeds the local session.
func runSigninFlow(cfg *config.Config, reader *bufio.Reader, logger *slog.Logger) error {
	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	username = strings.TrimSpace(username)

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	client := api.NewClient(cfg.Server.URL, cfg.Server.APIKey, cfg.Server.ClientID, func() string { return "" }, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := client.Login(ctx, username, string(password))
	if err != nil {
		return err
	}

	st, err := store.Open(config.DataDir())
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	defer st.Close()

	sess := session.NewStore(st, logger)
	sess.Login(result.Token, result.User)

	fmt.Printf("✓ Signed in as %s\n", result.User.Nickname)
	return nil
}

// probeServerWithSpinner hits the public video listing to verify the URL
func probeServerWithSpinner(serverURL, apiKey, clientID string, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := api.NewClient(serverURL, apiKey, clientID, func() string { return "" }, logger)

	errCh := make(chan error, 1)
	go func() {
		_, err := client.ListVideos(ctx, 1, 1)
		errCh <- err
	}()

	frame := 0
	fmt.Printf("\r%s Checking server...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-errCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ Server reachable")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking server...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("connection timed out")
		}
	}
}
