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
	"golang.org/x/term"

	"github.com/navatui/nava/internal/account"
	"github.com/navatui/nava/internal/adapter"
	"github.com/navatui/nava/internal/backend"
	"github.com/navatui/nava/internal/catalog"
	"github.com/navatui/nava/internal/domain"
	"github.com/navatui/nava/internal/narrator"
	"github.com/navatui/nava/internal/review"
	"github.com/navatui/nava/internal/search"
	"github.com/navatui/nava/internal/store"
	"github.com/navatui/nava/internal/tui"
	"github.com/navatui/nava/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("nava %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting nava", "version", Version)

	// Check if configured
	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	// Open the local session store
	sessions, err := store.Open(adapter.DataPath())
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer sessions.Close()

	// One backend client serves reads, writes and uploads; the auth
	// client only mints and revokes tokens
	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.AnonKey, logger)
	auth := backend.NewAuthClient(cfg.Backend.URL, cfg.Backend.AnonKey, logger)
	accounts := account.NewService(auth, sessions, client, logger)

	ctx := context.Background()
	if err := promptAccount(ctx, accounts); err != nil {
		return err
	}

	// Create services
	coordinator := catalog.NewCoordinator(client, logger)
	reviews := review.NewService(client, client, logger)
	narrators := narrator.NewService(client, client, client, logger)
	searcher := search.NewService(client, logger)

	// Create TUI model
	model := tui.NewModel(coordinator, accounts, reviews, narrators, searcher,
		cfg.Preferences.Locale, cfg.Preferences.GridColumns)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *adapter.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Nava!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	// Loop until the backend answers
	for {
		fmt.Print("Backend URL (e.g., https://abc123.supabase.co): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		backendURL := strings.TrimSpace(input)

		if backendURL == "" {
			fmt.Println("Backend URL cannot be empty. Please try again.")
			continue
		}

		fmt.Print("Anon key: ")
		input, err = reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		anonKey := strings.TrimSpace(input)

		if anonKey == "" {
			fmt.Println("Anon key cannot be empty. Please try again.")
			continue
		}

		fmt.Println()
		if err := verifyBackendWithSpinner(backendURL, anonKey, logger); err != nil {
			fmt.Printf("\n✗ Could not reach the backend: %v\n", err)
			fmt.Println("Please check the URL and key and try again.")
			fmt.Println()
			continue
		}

		cfg.Backend.URL = backendURL
		cfg.Backend.AnonKey = anonKey
		break
	}

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run nava again to start the application.")

	return nil
}

// verifyBackendWithSpinner probes the catalog with a visual spinner
func verifyBackendWithSpinner(backendURL, anonKey string, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)

	// Start the probe in background
	go func() {
		client := backend.NewClient(backendURL, anonKey, logger)
		_, err := client.Query(ctx, catalog.ContentTable, domain.RemoteQuery{
			Select: "id",
			Limit:  1,
		})
		resultCh <- err
	}()

	// Spinner animation
	frame := 0
	fmt.Printf("\r%s Checking the backend...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ Backend reachable")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking the backend...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("check timed out")
		}
	}
}

// promptAccount restores the stored session or walks the user through
// signing in. Guests can skip and browse the public catalog.
func promptAccount(ctx context.Context, accounts *account.Service) error {
	if sess, ok := accounts.Restore(ctx); ok {
		fmt.Printf("Welcome back, %s\n", sess.Email)
		return nil
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Println()
		fmt.Println("  [1] Sign in")
		fmt.Println("  [2] Create an account")
		fmt.Println("  [3] Browse as a guest")
		fmt.Println()
		fmt.Print("Choice: ")

		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		switch strings.TrimSpace(input) {
		case "1":
			if err := runAuthPrompt(ctx, accounts, reader, false); err != nil {
				fmt.Printf("✗ %v\n", err)
				continue
			}
			return nil
		case "2":
			if err := runAuthPrompt(ctx, accounts, reader, true); err != nil {
				fmt.Printf("✗ %v\n", err)
				continue
			}
			return nil
		case "3":
			fmt.Println("Browsing as a guest. Reviews and listening history need an account.")
			return nil
		default:
			fmt.Println("Enter 1, 2 or 3.")
		}
	}
}

// runAuthPrompt reads credentials and signs the user in or up. The
// password never echoes.
func runAuthPrompt(ctx context.Context, accounts *account.Service, reader *bufio.Reader, signUp bool) error {
	fmt.Print("Email: ")
	input, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	email := strings.TrimSpace(input)
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return fmt.Errorf("password cannot be empty")
	}

	var sess *domain.Session
	if signUp {
		sess, err = accounts.SignUp(ctx, email, string(password))
	} else {
		sess, err = accounts.SignIn(ctx, email, string(password))
	}
	if err != nil {
		return err
	}

	fmt.Printf("✓ Signed in as %s\n", sess.Email)
	return nil
}
