package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/On-Jun9/PhotoTidy/internal/config"
	"github.com/On-Jun9/PhotoTidy/internal/metadata"
	"github.com/On-Jun9/PhotoTidy/internal/photo"
	"github.com/On-Jun9/PhotoTidy/internal/pipeline"
	"github.com/On-Jun9/PhotoTidy/pkg/types"
)

var (
	appVersion  = "0.1.0"
	cfgFile     string
	exclude     []string
	dedupMethod string
	keepGoing   bool
	dryRun      bool
	hashVerify  bool
	logFile     string
	logJSON     bool
	logLevel    string
	progress    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "phototidy SOURCE TARGET",
	Short: "Copy photos into a directory, renamed by capture time",
	Long: `PhotoTidy copies every file directly inside SOURCE into TARGET. Files whose
embedded EXIF metadata carries a capture time are renamed to
YYYY-MM-DD_HH-MM-SS.<ext>; the others keep their name. Extensions are
lower-cased. Existing files in TARGET are overwritten.`,
	Args:          cobra.ExactArgs(2),
	RunE:          runPipeline,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var fieldsCmd = &cobra.Command{
	Use:   "fields FILE",
	Short: "List the metadata fields of one photo",
	Args:  cobra.ExactArgs(1),
	RunE:  printFields,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), appVersion)
	},
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.Flags().StringSliceVarP(&exclude, "exclude", "x", nil, "glob of file names to leave out (repeatable)")
	rootCmd.Flags().StringVar(&dedupMethod, "dedup", "", "skip files already in TARGET: name-size, hash")
	rootCmd.Flags().BoolVar(&keepGoing, "keep-going", false, "count failures and continue instead of stopping")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "simulate without copying")
	rootCmd.Flags().BoolVar(&hashVerify, "hash-verify", false, "verify copies with hash")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "log file path")
	rootCmd.Flags().BoolVar(&logJSON, "log-json", false, "write the log file as JSON lines")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "console log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&progress, "progress", false, "show a progress bar instead of per-file lines")
}

func buildConfig(args []string) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, errors.Errorf("failed to load config: %w", err)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	cfg.Source = args[0]
	cfg.Target = args[1]

	if len(exclude) > 0 {
		cfg.Exclude = exclude
	}
	if dedupMethod != "" {
		cfg.Dedup = types.DedupMethod(dedupMethod)
	}
	if keepGoing {
		cfg.KeepGoing = true
	}
	if dryRun {
		cfg.DryRun = true
	}
	if hashVerify {
		cfg.HashVerify = true
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if logJSON {
		cfg.LogJSON = true
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if progress {
		cfg.Progress = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(args)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return errors.Errorf("failed to create pipeline: %w", err)
	}
	defer p.Close()

	summary, err := p.Run()
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return errors.Errorf("%d of %d files failed", summary.Failed, summary.ScannedFiles)
	}
	return nil
}

func printFields(cmd *cobra.Command, args []string) error {
	ph, err := photo.New(args[0], metadata.NewReader(zerolog.Nop()))
	if err != nil {
		return err
	}

	fields, ok := ph.Fields()
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: no metadata\n", ph.Path())
		return nil
	}

	out := cmd.OutOrStdout()
	for _, f := range fields {
		fmt.Fprintln(out, f)
	}
	return nil
}
