// Package main provides the CLI entry point for r60proc.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/r60proc/r60proc-go/pkg/r60"
	"github.com/r60proc/r60proc-go/pkg/r60/archive"
	"github.com/r60proc/r60proc-go/pkg/r60/config"
	"github.com/r60proc/r60proc-go/pkg/r60/mailbox"
	"github.com/r60proc/r60proc-go/pkg/r60/pipeline"
	"github.com/r60proc/r60proc-go/pkg/r60/registry"
	"github.com/r60proc/r60proc-go/pkg/r60/store"
)

var (
	pretty  bool
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "r60proc",
		Short: "Process R-60 spreadsheet forms from an inbox into a ledger",
		Long: `r60proc classifies R-60 spreadsheet forms, extracts their header and
line items by cell coordinates, deduplicates by form number, persists the
rows and archives the original file.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	parseCmd := &cobra.Command{
		Use:   "parse [input.xlsx]",
		Short: "Assemble a single form file and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	parseCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Process one batch of inbound messages",
		RunE:  runBatch,
	}

	variantsCmd := &cobra.Command{
		Use:   "variants",
		Short: "List the registered form variants",
		RunE:  runVariants,
	}
	variantsCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(parseCmd, runCmd, variantsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() (*config.Config, *slog.Logger) {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()
	cfg := config.Load()

	level := slog.LevelInfo
	if verbose || strings.EqualFold(cfg.LogLevel, "debug") {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	return cfg, log
}

func loadRegistry(cfg *config.Config) (*registry.Registry, error) {
	if cfg.RegistryFile != "" {
		return registry.LoadFile(cfg.RegistryFile)
	}
	return registry.Default(), nil
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, log := setup()

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	sub, err := r60.Assemble(args[0], reg, r60.Options{Logger: log})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	return printJSON(sub)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, log := setup()

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	ledger, err := store.Open(cfg.LedgerPath)
	if err != nil {
		return err
	}
	defer ledger.Close()

	var archiver archive.Archiver
	switch cfg.ArchiveBackend {
	case "minio":
		archiver, err = archive.NewMinioArchive(cmd.Context(), archive.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioSSL,
		})
	case "local":
		archiver, err = archive.NewLocalArchive(cfg.ArchiveDir)
	default:
		return fmt.Errorf("unknown archive backend: %s", cfg.ArchiveBackend)
	}
	if err != nil {
		return err
	}

	inbox, err := mailbox.NewDirInbox(cfg.InboxDir, ".xlsx")
	if err != nil {
		return err
	}

	proc := pipeline.New(pipeline.Config{
		Query:          cfg.Query,
		Limit:          cfg.Limit,
		LabelProcessed: cfg.LabelProcessed,
		LabelError:     cfg.LabelError,
		LabelDuplicate: cfg.LabelDuplicate,
		NotifyTo:       cfg.NotifyEmail,
		ArchiveRoot:    cfg.ArchiveRoot,
	}, inbox, ledger, archiver, reg, log)

	summary, err := proc.Run(cmd.Context())
	if err != nil {
		return err
	}
	if summary.Errors > 0 {
		return fmt.Errorf("%d of %d message(s) failed", summary.Errors, summary.Total())
	}
	return nil
}

func runVariants(cmd *cobra.Command, args []string) error {
	cfg, _ := setup()

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	return printJSON(reg.Variants())
}

func printJSON(v any) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
