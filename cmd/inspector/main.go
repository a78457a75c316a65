// Command inspector is an interactive debugger front end for V8 inspector targets.
//
// Usage:
//
//	inspector [-addr host:port] [-timeout 60s] [-frames file] [-mcp] [-v] [address]
//
// With -mcp it serves the debugger operations as Model Context Protocol tools
// on stdin/stdout instead of starting the prompt.
//
// Defaults are read from INSPECTOR_ADDRESS, INSPECTOR_REQUEST_TIMEOUT and
// INSPECTOR_FRAME_LOG, which may also be set in a .env file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	inspector "github.com/wagiedev/inspector-go"
)

var version = "dev"

const (
	addressEnv  = "INSPECTOR_ADDRESS"
	frameLogEnv = "INSPECTOR_FRAME_LOG"

	defaultAddress = "127.0.0.1:9229"
	connectTimeout = 10 * time.Second
)

// cliConfig is the resolved command-line configuration.
type cliConfig struct {
	address string
	timeout time.Duration
	frames  string
	mcp     bool
	verbose bool
}

// parseFlags resolves flags over environment defaults. A positional
// argument overrides -addr.
func parseFlags(args []string, getenv func(string) string) (*cliConfig, error) {
	cfg := &cliConfig{
		address: defaultAddress,
		timeout: inspector.DefaultRequestTimeout,
		frames:  getenv(frameLogEnv),
	}

	if v := getenv(addressEnv); v != "" {
		cfg.address = v
	}

	if v := getenv(inspector.RequestTimeoutEnv); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", inspector.RequestTimeoutEnv, err)
		}

		cfg.timeout = d
	}

	fs := flag.NewFlagSet("inspector", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.address, "addr", cfg.address, "debugger address: host:port, port, http(s) or ws(s) URL")
	fs.DurationVar(&cfg.timeout, "timeout", cfg.timeout, "per-request timeout, 0 to wait forever")
	fs.StringVar(&cfg.frames, "frames", cfg.frames, "append every protocol frame to this file")
	fs.BoolVar(&cfg.mcp, "mcp", false, "serve debugger tools over MCP on stdio")
	fs.BoolVar(&cfg.verbose, "v", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.address = fs.Arg(0)
	default:
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}

	if cfg.timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative: %s", cfg.timeout)
	}

	return cfg, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "inspector:", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := parseFlags(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "usage: inspector [-addr host:port] [-timeout 60s] [-frames file] [-mcp] [-v] [address]")

			return nil
		}

		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := []inspector.Option{
		inspector.WithLogger(log),
		inspector.WithRequestTimeout(cfg.timeout),
	}

	if cfg.frames != "" {
		f, err := os.OpenFile(cfg.frames, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open frame log: %w", err)
		}
		defer f.Close()

		opts = append(opts, inspector.WithFrameLog(f))
	}

	client := inspector.NewClient(opts...)
	defer client.Close()

	if cfg.mcp {
		if err := connect(ctx, client, cfg.address); err != nil {
			return err
		}

		log.Info("Serving MCP tools on stdio", "address", cfg.address)

		return inspector.NewMCPServer(client, "inspector", version).Run(ctx, &mcp.StdioTransport{})
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "debug> ",
		HistoryFile:       historyFile(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "quit",
		HistorySearchFold: true,
		AutoComplete:      completer(),
	})
	if err != nil {
		return fmt.Errorf("initialize readline: %w", err)
	}
	defer rl.Close()

	// Subscribe before connecting so early events are not missed.
	r := newREPL(client, rl.Stdout())

	if err := connect(ctx, client, cfg.address); err != nil {
		return err
	}

	fmt.Fprintf(rl.Stdout(), "Connected to %s. Type help for commands.\n", cfg.address)

	return r.loop(ctx, rl)
}

// connect attaches to address and waits for the socket to open.
func connect(ctx context.Context, client inspector.Client, address string) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Connect(ctx, address); err != nil {
		return err
	}

	return client.WaitReady(ctx)
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".inspector_history")
}
