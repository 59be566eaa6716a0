package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/okonma/arc/internal/account"
	"github.com/okonma/arc/internal/anilist"
	"github.com/okonma/arc/internal/artwork"
	"github.com/okonma/arc/internal/cache"
	"github.com/okonma/arc/internal/config"
	"github.com/okonma/arc/internal/hero"
	"github.com/okonma/arc/internal/log"
	"github.com/okonma/arc/internal/search"
	"github.com/okonma/arc/internal/service"
	"github.com/okonma/arc/internal/store"
	"github.com/okonma/arc/internal/tui"
	"github.com/okonma/arc/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	var doLogin bool
	var clearState bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&doLogin, "login", false, "sign in to the account service")
	flag.BoolVar(&clearState, "clear-state", false, "wipe the cache and hero rotation state")
	flag.Parse()

	if showVersion {
		fmt.Printf("arc %s\n", Version)
		return
	}

	if clearState {
		if err := config.ClearState(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("State cleared.")
		return
	}

	if err := run(doLogin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(doLogin bool) error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting arc", "version", Version)

	// Account client is optional; the app works signed out.
	var accounts *account.Client
	if cfg.Account.Endpoint != "" {
		accounts = account.NewClient(cfg.Account.Endpoint, cfg.Account.ProjectID, cfg.Account.DatabaseID, logger)
		accounts.SetSession(cfg.Account.Session)
	}

	if doLogin {
		if accounts == nil {
			return fmt.Errorf("no account endpoint configured; set account.endpoint in config.yaml")
		}
		return runLoginFlow(accounts)
	}

	// Open persistent state (cache + hero rotation memory)
	st, err := store.Open(config.GetStatePath())
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	defer st.Close()

	c := cache.New(st, logger)
	rotation := hero.NewRotation(st, logger)

	styles.ApplyTheme(cfg.UI.Theme)

	// Create clients and services
	client := anilist.NewClient(cfg.AniList.Endpoint, logger)
	homeSvc := service.NewHomeService(c, client, rotation, cfg.AniList.RefreshInterval, cfg.UI.SlateSize, logger)
	defer homeSvc.Close()

	myListSvc := service.NewMyListService(accounts, client, c, logger)

	mapper := artwork.NewMapper(cfg.Artwork.TVDBEndpoint, cfg.Artwork.TVDBAPIKey, c, logger)
	artSvc := artwork.NewService(cfg.Artwork.FanartEndpoint, cfg.Artwork.FanartAPIKey, mapper, c, logger)

	detailSvc := service.NewDetailService(client, c, artSvc, logger)

	searchSvc := search.NewService(client, logger)

	// Skip the startup splash when the trending rail is already cached.
	warm := homeSvc.HasWarmCache(c)
	if warm {
		logger.Info("warm cache hit, skipping splash")
	}

	// Create TUI model
	model := tui.NewModel(homeSvc, myListSvc, detailSvc, searchSvc, artSvc, warm, logger)

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

// runLoginFlow prompts for credentials, opens a session, and stores the
// session secret in the config file.
func runLoginFlow(accounts *account.Client) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	session, err := accounts.Login(ctx, email, string(password))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := config.SaveSession(session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Signed in!")
	fmt.Println()
	fmt.Println("Run arc again to start the application.")
	return nil
}
