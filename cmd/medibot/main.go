package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/medibot"
	"github.com/fwojciec/medibot/bot"
	"github.com/fwojciec/medibot/gemini"
	"github.com/fwojciec/medibot/openai"
	medislog "github.com/fwojciec/medibot/slog"
	"github.com/fwojciec/medibot/sqlite"
	"github.com/fwojciec/medibot/yaml"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Overridden by --db or MEDIBOT_DB.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Seed and Asker replace the YAML seed and the model provider when set.
	Seed  medibot.SeedSource
	Asker medibot.Asker

	// Services for end-to-end testing.
	Directory medibot.DirectoryService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("medibot"),
		kong.Description("Doctor recommendation chatbot."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'medibot --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	command := kongCtx.Selected().Name

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	deps.DBPath = m.DBPath

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set MEDIBOT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	var directory medibot.DirectoryService = sqlite.NewDirectoryService(m.DB)
	if cli.Verbose {
		directory = medislog.NewLoggingDirectoryService(directory, deps.Logger)
	}
	m.Directory = directory
	deps.Directory = directory

	// The directory is rebuilt from the seed on every start.
	seed := m.Seed
	if seed == nil {
		seed = yaml.NewSeedSource(cli.Seed)
	}
	doctors, err := seed.LoadDoctors()
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", medibot.ErrorMessage(err))
		return err
	}
	if err := directory.Initialize(ctx, doctors); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", medibot.ErrorMessage(err))
		return err
	}

	deps.Bot = &bot.Bot{Directory: directory}

	if needsModel(command) {
		asker, counter, err := m.newAsker(ctx, cli, deps.Logger, stderr)
		if err != nil {
			return err
		}
		deps.Bot.Asker = asker
		deps.Bot.TokenCounter = counter
	}

	return kongCtx.Run(deps)
}

// needsModel reports whether command talks to the language model.
func needsModel(command string) bool {
	switch command {
	case "recommend", "ask", "chat", "serve":
		return true
	}
	return false
}

// newAsker connects to the configured provider and wraps the client with
// rate limiting and, in verbose mode, logging. The token counter is nil
// unless the provider has a local tokenizer.
func (m *Main) newAsker(ctx context.Context, cli *CLI, logger *slog.Logger, stderr io.Writer) (medibot.Asker, medibot.TokenCounter, error) {
	var (
		asker   medibot.Asker = m.Asker
		counter medibot.TokenCounter
	)

	if asker == nil {
		switch cli.Provider {
		case "openai":
			apiKey := os.Getenv("OPENAI_API_KEY")
			if apiKey == "" {
				fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set. Get an API key at https://platform.openai.com/api-keys")
				return nil, nil, fmt.Errorf("OPENAI_API_KEY not set")
			}
			asker = openai.NewAsker(openai.NewClient(apiKey), cli.Model)

		default:
			apiKey := os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
				return nil, nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
			}

			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
			}
			asker = gemini.NewAsker(client, cli.Model)

			// Prompts are sent untrimmed when the tokenizer is unavailable.
			tc, err := gemini.NewTokenCounter(tokenizerModel)
			if err != nil {
				logger.Warn("token counting disabled", "err", err)
			} else {
				counter = tc
			}
		}
	}

	asker = bot.NewLimitedAsker(asker, cli.RPS)
	if cli.Verbose {
		asker = medislog.NewLoggingAsker(asker, logger)
	}
	return asker, counter, nil
}

// tokenizerModel is used for token counting regardless of the chat model,
// since the local tokenizer only ships a few vocabularies.
const tokenizerModel = gemini.DefaultModel

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "medibot.db"
	}
	dir := filepath.Join(home, ".medibot")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "medibot.db")
}
