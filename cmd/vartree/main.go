package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vartree/internal/adapters/editor"
	"vartree/internal/adapters/opener"
	"vartree/internal/adapters/tui"
	"vartree/internal/application/commands"
	"vartree/internal/config"
	"vartree/internal/logger"
	"vartree/internal/ports"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	langFlag := flag.String("lang", cfg.Language, "language of the column titles")
	charsetFlag := flag.String("charset", cfg.Charset, "input charset, e.g. windows-1252")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: vartree [flags] [file | - | sqlite://db?table=t | s3://bucket/key]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	source := cfg.Source
	if flag.NArg() > 0 {
		source = flag.Arg(0)
	}
	cfg.Charset = *charsetFlag
	if source == "-" && stdinIsTerminal() {
		flag.Usage()
		return fmt.Errorf("no document given")
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	// The alternate screen owns the terminal, so logs only ever go to a file
	if err := logger.Init(logger.Options{Enabled: cfg.Log, LogDir: cfg.LogDir, Level: level}); err != nil {
		return err
	}

	ctx := context.Background()

	opened, err := commands.NewOpenSourceCommand(opener.New(cfg), source).Execute(ctx)
	if err != nil {
		return err
	}
	defer opened.Close()

	loaded, err := commands.NewLoadModelCommand(opened.Source, *langFlag).Execute(ctx)
	if err != nil {
		return err
	}

	app := tui.NewApp(opened.Source, loaded.Model, editor.NewOpener())

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if opened.Spec.Kind == ports.SourceStdin {
		// stdin carried the document; read keys from the terminal instead
		opts = append(opts, tea.WithInputTTY())
	}

	p := tea.NewProgram(app, opts...)
	if _, err := p.Run(); err != nil {
		logger.Error("tui stopped", "err", err)
		return err
	}
	return nil
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
