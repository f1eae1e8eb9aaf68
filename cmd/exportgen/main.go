package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"exportgen/internal/app"
	"exportgen/internal/config"
	"exportgen/internal/domain"
	"exportgen/internal/infra/repos/blueprints"
	"exportgen/internal/infra/repos/runs"
	"exportgen/internal/logging"
	"exportgen/internal/registry"
	"exportgen/internal/validation"
)

var (
	blueprintsDir string
	runsDBPath    string
	logLevel      string
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "exportgen",
		Short: "Sized delimited-text dataset generator",
	}

	rootCmd.PersistentFlags().StringVar(&blueprintsDir, "blueprints-dir", cfg.BlueprintsDir, "Blueprints directory")
	rootCmd.PersistentFlags().StringVar(&runsDBPath, "runs-db", cfg.RunsDBPath, "Runs database path or DSN")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level")

	rootCmd.AddCommand(blueprintCmd())
	rootCmd.AddCommand(generateCmd(cfg))
	rootCmd.AddCommand(schemaCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(generatorsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveBlueprint accepts either a repository id/name or a file path.
func resolveBlueprint(ref string) (*domain.Blueprint, error) {
	repo := blueprints.NewFileRepository(blueprintsDir)
	if strings.Contains(ref, "/") || strings.HasSuffix(ref, ".yaml") || strings.HasSuffix(ref, ".yml") || strings.HasSuffix(ref, ".json") {
		return repo.GetByPath(ref)
	}
	return repo.Get(ref)
}

func newService() (*app.ExportService, error) {
	runRepo := runs.NewRepository(runsDBPath)
	if err := runRepo.Init(); err != nil {
		return nil, fmt.Errorf("failed to open runs database: %w", err)
	}

	return app.NewExportService(
		runRepo,
		registry.DefaultGeneratorRegistry(),
		logging.NewLogger(logLevel),
	), nil
}

func blueprintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blueprint",
		Short: "Manage blueprints",
	}

	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List blueprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := blueprints.NewFileRepository(blueprintsDir)
			list, err := repo.List()
			if err != nil {
				return err
			}

			if format == "json" {
				data, _ := json.MarshalIndent(list, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTABLES\tFILES\tSIZE")
			for _, bp := range list {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", bp.ID, bp.Name, len(bp.Tables), bp.NumberOfFiles, bp.DataSizeBytes)
			}
			w.Flush()
			return nil
		},
	}
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	showCmd := &cobra.Command{
		Use:   "show <id|path>",
		Short: "Show blueprint details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bp, err := resolveBlueprint(args[0])
			if err != nil {
				return err
			}

			data, _ := yaml.Marshal(bp)
			fmt.Println(string(data))
			return nil
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate <id|path>",
		Short: "Validate a blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bp, err := resolveBlueprint(args[0])
			if err != nil {
				return err
			}

			validator := validation.NewValidator(registry.DefaultGeneratorRegistry())
			if err := validator.ValidateBlueprint(bp); err != nil {
				fmt.Printf("Validation failed: %v\n", err)
				return err
			}

			fmt.Printf("Blueprint '%s' is valid\n", bp.Name)
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd, validateCmd)
	return cmd
}

func generateCmd(cfg *config.Config) *cobra.Command {
	var (
		blueprintRef string
		outDir       string
		toStdout     bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate export files from a blueprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			if blueprintRef == "" {
				return fmt.Errorf("--blueprint required")
			}

			bp, err := resolveBlueprint(blueprintRef)
			if err != nil {
				return err
			}

			service, err := newService()
			if err != nil {
				return err
			}

			if toStdout {
				text, err := service.GenerateText(bp)
				if err != nil {
					return err
				}
				fmt.Print(text)
				return nil
			}

			run, err := service.GenerateFiles(bp, outDir)
			if err != nil {
				return err
			}

			fmt.Printf("Run %s completed\n", run.ID)
			var stats domain.RunStats
			if run.Stats != nil && json.Unmarshal(run.Stats, &stats) == nil {
				fmt.Printf("Files written: %d (%d bytes each target)\n", stats.FilesWritten, stats.FileSizeBytes)
				fmt.Printf("Duration: %.2fs\n", stats.DurationSeconds)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&blueprintRef, "blueprint", "b", "", "Blueprint id or path")
	cmd.Flags().StringVarP(&outDir, "out", "o", cfg.OutDir, "Output directory")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print one export to stdout instead of writing files")
	return cmd
}

func schemaCmd() *cobra.Command {
	var (
		blueprintRef string
		outPath      string
	)

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print or write a blueprint's schema JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if blueprintRef == "" {
				return fmt.Errorf("--blueprint required")
			}

			bp, err := resolveBlueprint(blueprintRef)
			if err != nil {
				return err
			}

			service, err := newService()
			if err != nil {
				return err
			}

			schema, err := service.SchemaJSON(bp)
			if err != nil {
				return err
			}

			if outPath != "" {
				return os.WriteFile(outPath, []byte(schema), 0o644)
			}
			fmt.Println(schema)
			return nil
		},
	}

	cmd.Flags().StringVarP(&blueprintRef, "blueprint", "b", "", "Blueprint id or path")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write schema JSON to this file")
	return cmd
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Inspect past runs",
	}

	var (
		limit  int
		status string
		format string
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepo := runs.NewRepository(runsDBPath)
			if err := runRepo.Init(); err != nil {
				return err
			}

			list, err := runRepo.List(limit, status)
			if err != nil {
				return err
			}

			if format == "json" {
				data, _ := json.MarshalIndent(list, "", "  ")
				fmt.Println(string(data))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tBLUEPRINT\tFILES\tSTATUS\tSTARTED")
			for _, r := range list {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					r.ID[:8], r.BlueprintName, r.NumberOfFiles, r.Status, r.StartedAt.Format("2006-01-02 15:04"))
			}
			w.Flush()
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Limit results")
	listCmd.Flags().StringVar(&status, "status", "", "Filter by status")
	listCmd.Flags().StringVar(&format, "format", "table", "Output format (table|json)")

	showCmd := &cobra.Command{
		Use:   "show <run_id>",
		Short: "Show run details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runRepo := runs.NewRepository(runsDBPath)
			if err := runRepo.Init(); err != nil {
				return err
			}

			run, err := runRepo.Get(args[0])
			if err != nil {
				return err
			}

			data, _ := yaml.Marshal(run)
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}

func generatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generators",
		Short: "List available column generators",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range registry.DefaultGeneratorRegistry().List() {
				fmt.Println(name)
			}
			return nil
		},
	}
}
