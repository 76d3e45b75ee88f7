// FILE: lixenwraith/emaconfig/cmd/emaconfig/root.go
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lixenwraith/config"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/emaconfig"
)

// settings are the tool defaults, overridable through EMACONFIG_* variables.
type settings struct {
	File        string `toml:"file"`
	Format      string `toml:"format"`
	Severity    string `toml:"severity"`
	Output      string `toml:"output"`
	MaxFileSize int64  `toml:"max_file_size"`
	Discover    bool   `toml:"discover"`
}

func defaultSettings() settings {
	return settings{
		File:     emaconfig.DefaultFileName,
		Format:   emaconfig.FormatAuto,
		Severity: emaconfig.SeverityWarning.String(),
		Output:   emaconfig.FormatTOML,
	}
}

// loadSettings reads tool defaults from the environment.
func loadSettings() (settings, error) {
	defaults := defaultSettings()
	cfg, err := config.NewBuilder().
		WithDefaults(defaults).
		WithEnvPrefix("EMACONFIG_").
		WithArgs([]string{}).
		Build()
	// The tool has no settings file; Build still returns the config when none is found.
	if cfg == nil {
		return defaults, fmt.Errorf("failed to load tool settings: %w", err)
	}

	s := defaults
	if v, err := cfg.String("file"); err == nil {
		s.File = v
	}
	if v, err := cfg.String("format"); err == nil {
		s.Format = v
	}
	if v, err := cfg.String("severity"); err == nil {
		s.Severity = v
	}
	if v, err := cfg.String("output"); err == nil {
		s.Output = v
	}
	if v, err := cfg.Int64("max_file_size"); err == nil {
		s.MaxFileSize = v
	}
	if v, err := cfg.Bool("discover"); err == nil {
		s.Discover = v
	}
	return s, nil
}

type resolveFlags struct {
	consumer     string
	host         string
	overlays     []string
	userDispatch bool
	log          bool
}

func newRootCommand(version string) *cobra.Command {
	s, settingsErr := loadSettings()

	root := &cobra.Command{
		Use:   "emaconfig",
		Short: "Resolve and inspect consumer session configuration",
		Long: `emaconfig reads an EmaConfig file (XML, TOML, YAML or JSON), applies
programmatic documents and overrides, and prints the active configuration
a consumer session would use.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return settingsErr
		},
	}

	root.PersistentFlags().StringVarP(&s.File, "file", "f", s.File, "configuration file")
	root.PersistentFlags().StringVar(&s.Format, "format", s.Format, "file format: auto, xml, toml, yaml, json")
	root.PersistentFlags().StringVar(&s.Severity, "severity", s.Severity, "minimum diagnostic severity: Verbose, Success, Warning, Error, NoLogMsg")
	root.PersistentFlags().Int64Var(&s.MaxFileSize, "max-file-size", s.MaxFileSize, "reject larger files (0 disables)")
	root.PersistentFlags().BoolVar(&s.Discover, "discover", s.Discover, "search EMA_CONFIG, the working directory and XDG paths for EmaConfig.*")

	root.AddCommand(newResolveCommand(&s))
	root.AddCommand(newErrorsCommand(&s))
	root.AddCommand(newTreeCommand(&s))
	return root
}

func (s *settings) builder(args []string) *emaconfig.Builder {
	b := emaconfig.NewBuilder().
		WithArgs(args).
		WithFile(s.File).
		WithFormat(s.Format).
		WithMaxFileSize(s.MaxFileSize)
	if s.Discover {
		b = b.WithFileDiscovery(emaconfig.DefaultDiscoveryOptions())
	}
	return b
}

func newResolveCommand(s *settings) *cobra.Command {
	var f resolveFlags
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the active configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			min, err := emaconfig.ParseSeverity(s.Severity)
			if err != nil {
				return err
			}

			b := s.builder(args).WithConsumer(f.consumer)
			if cmd.Flags().Changed("host") {
				b = b.WithHost(f.host)
			}
			if f.userDispatch {
				b = b.WithOperationModel(emaconfig.UserDispatch)
			}
			for _, path := range f.overlays {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read programmatic document '%s': %w", path, err)
				}
				b = b.WithOverlayData(data)
			}

			active, cfg, err := b.Resolve()
			if cfg != nil {
				if rerr := reportDiagnostics(cmd.ErrOrStderr(), cfg, min, f.log); rerr != nil {
					return fmt.Errorf("failed to write diagnostics: %w", rerr)
				}
			}
			if err != nil {
				return err
			}
			return active.Dump(cmd.OutOrStdout(), s.Output)
		},
	}
	cmd.Flags().StringVarP(&f.consumer, "consumer", "c", "", "consumer name (must exist in the file)")
	cmd.Flags().StringVar(&f.host, "host", "", "host[:port] override; forces a socket channel")
	cmd.Flags().StringSliceVarP(&f.overlays, "overlay", "o", nil, "programmatic document (YAML or JSON), repeatable")
	cmd.Flags().BoolVar(&f.userDispatch, "user-dispatch", false, "use the user dispatch operation model")
	cmd.Flags().BoolVar(&f.log, "log", false, "emit diagnostics as structured log records")
	cmd.Flags().StringVar(&s.Output, "output", s.Output, "output format: toml or yaml")
	return cmd
}

func newErrorsCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "errors",
		Short: "Print diagnostics raised while reading and resolving",
		RunE: func(cmd *cobra.Command, args []string) error {
			min, err := emaconfig.ParseSeverity(s.Severity)
			if err != nil {
				return err
			}
			_, cfg, err := s.builder(args).Resolve()
			if cfg == nil {
				return err
			}
			if perr := cfg.PrintErrors(cmd.OutOrStdout(), min); perr != nil {
				return perr
			}
			return err
		},
	}
}

func newTreeCommand(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the configuration tree read from the file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.builder(args).Build()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), cfg.Debug())
			return nil
		},
	}
}

func reportDiagnostics(w io.Writer, cfg *emaconfig.ConsumerConfig, min emaconfig.Severity, structured bool) error {
	if structured {
		logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
		cfg.LogErrors(emaconfig.NewSlogLogger(logger), min)
		return nil
	}
	if cfg.Errors().Count(min) > 0 {
		return cfg.PrintErrors(w, min)
	}
	return nil
}
