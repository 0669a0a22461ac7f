package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"vartree/internal/adapters/codec"
	"vartree/internal/adapters/opener"
	"vartree/internal/application/commands"
	"vartree/internal/config"
	"vartree/internal/domain"
	"vartree/internal/logger"
	"vartree/internal/ports"
)

var (
	cfg        = config.Load()
	sourceURI  string
	language   string
	charset    string
	formatName string
	verbose    bool

	opened *commands.OpenSourceResult
	model  *domain.VariantModel
)

var rootCmd = &cobra.Command{
	Use:   "vartree-cli",
	Short: "Browse nested documents as a key/value tree",
	Long: `vartree-cli shows JSON, YAML and key/value global storage documents
as a two-column key/value tree.

Documents can come from a file, stdin ("-"), a sqlite table
(sqlite://path?table=name) or an S3 object (s3://bucket/key).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		// a failed run skips PersistentPostRunE, so drop anything left over
		closeSource()

		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		return logger.Init(logger.Options{
			Enabled: verbose || cfg.Log,
			LogDir:  cfg.LogDir,
			Level:   level,
			Stderr:  verbose,
		})
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeSource()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&sourceURI, "source", "s", cfg.Source, "document: file, - for stdin, sqlite://path?table=name, s3://bucket/key")
	rootCmd.PersistentFlags().StringVar(&language, "lang", cfg.Language, "language of the column titles (en, de, it, fr)")
	rootCmd.PersistentFlags().StringVar(&charset, "charset", cfg.Charset, "legacy input charset, e.g. windows-1252")
	rootCmd.PersistentFlags().StringVarP(&formatName, "format", "f", "auto", "input format: auto, json, jsonl, yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
}

// newOpener builds the source opener from config and flags
func newOpener() (*opener.Opener, error) {
	format, err := codec.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	o := opener.New(cfg)
	o.Codec = codec.Options{Format: format, Charset: charset}
	return o, nil
}

// openSource resolves the --source flag. The result is closed after the
// command runs.
func openSource(ctx context.Context) (ports.DocumentSource, error) {
	if opened != nil {
		return opened.Source, nil
	}

	o, err := newOpener()
	if err != nil {
		return nil, err
	}

	result, err := commands.NewOpenSourceCommand(o, sourceURI).Execute(ctx)
	if err != nil {
		return nil, err
	}
	opened = result
	return result.Source, nil
}

// loadModel opens the source and builds the model over it
func loadModel(ctx context.Context) (*domain.VariantModel, error) {
	if model != nil {
		return model, nil
	}

	src, err := openSource(ctx)
	if err != nil {
		return nil, err
	}

	result, err := commands.NewLoadModelCommand(src, language).Execute(ctx)
	if err != nil {
		return nil, err
	}
	model = result.Model
	return model, nil
}

func closeSource() error {
	if opened == nil {
		return nil
	}
	err := opened.Close()
	opened, model = nil, nil
	return err
}
