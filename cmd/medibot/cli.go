package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/medibot"
	"github.com/fwojciec/medibot/bot"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DBPath    string
	Directory medibot.DirectoryService
	Bot       *bot.Bot
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB       string  `name:"db" env:"MEDIBOT_DB" help:"Database path (default ~/.medibot/medibot.db)"`
	Seed     string  `env:"MEDIBOT_SEED" type:"path" help:"Doctor seed YAML file (default: built-in directory)"`
	Provider string  `env:"MEDIBOT_PROVIDER" enum:"gemini,openai" default:"gemini" help:"Language model provider (${enum})"`
	Model    string  `env:"MEDIBOT_MODEL" help:"Model name (default depends on provider)"`
	RPS      float64 `name:"llm-rps" env:"MEDIBOT_LLM_RPS" default:"1" help:"Model requests per second, 0 for unlimited"`
	Verbose  bool    `short:"v" help:"Log service calls to stderr"`

	Init            InitCmd            `cmd:"" help:"Reload the doctor directory from the seed"`
	Symptoms        SymptomsCmd        `cmd:"" help:"List doctors whose symptoms contain the query"`
	Recommend       RecommendCmd       `cmd:"" help:"Recommend doctors for symptoms with a summary"`
	Ask             AskCmd             `cmd:"" help:"Ask a general health question"`
	Specializations SpecializationsCmd `cmd:"" help:"List all specializations"`
	Browse          BrowseCmd          `cmd:"" help:"List doctors of a specialization"`
	Chat            ChatCmd            `cmd:"" help:"Start an interactive chat session"`
	Serve           ServeCmd           `cmd:"" help:"Serve the web interface"`
}

// InitCmd is the "init" subcommand.
type InitCmd struct{}

// SymptomsCmd is the "symptoms" subcommand.
type SymptomsCmd struct {
	Query string `arg:"" optional:"" help:"Symptom text to search for; empty lists every doctor"`
}

// RecommendCmd is the "recommend" subcommand.
type RecommendCmd struct {
	Symptoms string `arg:"" help:"Symptoms to find doctors for"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask"`
}

// SpecializationsCmd is the "specializations" subcommand.
type SpecializationsCmd struct{}

// BrowseCmd is the "browse" subcommand.
type BrowseCmd struct {
	Specialization string `arg:"" help:"Specialization, exactly as listed by 'medibot specializations'"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `env:"MEDIBOT_ADDR" default:":8080" help:"Listen address"`
}
