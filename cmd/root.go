package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"picks/internal/config"
	"picks/internal/display"
	"picks/internal/logging"
	"picks/internal/pipeline"
	"picks/internal/transform"
	"picks/internal/tui"
)

var (
	flagMaxSize      int
	flagQuality      int
	flagFormat       string
	flagKeepNames    bool
	flagProcesses    int
	flagDryRun       bool
	flagSkipExisting bool
	flagInclude      string
	flagPreserveDirs bool
	flagVerbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "picks [flags] <source-folder> <destination>",
	Short: "picks - resize and re-encode image folders in bulk",
	Long: "picks optimizes a folder of images into a destination tree: resizing to a\n" +
		"maximum dimension, re-encoding to JPG or WebP, and renaming per a naming\n" +
		"policy, with a bounded worker pool and a dry-run preview.",
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Config{
			SourceRoot:   args[0],
			DestRoot:     args[1],
			MaxDimension: flagMaxSize,
			Quality:      flagQuality,
			Format:       config.Format(strings.ToLower(flagFormat)),
			KeepNames:    flagKeepNames,
			Workers:      flagProcesses,
			DryRun:       flagDryRun,
			SkipExisting: flagSkipExisting,
			Include:      flagInclude,
			PreserveDirs: flagPreserveDirs,
			Verbose:      flagVerbose,
		}
		if err := cfg.Resolve(); err != nil {
			return err
		}
		return run(cfg)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().IntVar(&flagMaxSize, "max-size", config.DefaultMaxDimension, "maximum size for the widest dimension")
	rootCmd.Flags().IntVarP(&flagQuality, "quality", "q", config.DefaultQuality, "image quality 1-100 (default 87 for jpg, 82 for webp)")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", string(config.FormatJPG), "output format: jpg or webp")
	rootCmd.Flags().BoolVar(&flagKeepNames, "keep-names", false, "keep original filenames instead of folder-NNNN renaming")
	rootCmd.Flags().IntVarP(&flagProcesses, "processes", "p", config.DefaultWorkers, "number of parallel workers (1-16)")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "preview the plan without converting any files")
	rootCmd.Flags().BoolVar(&flagSkipExisting, "skip-existing", false, "skip files already present in the destination (requires --keep-names)")
	rootCmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated extensions to include (e.g. jpg,png)")
	rootCmd.Flags().BoolVar(&flagPreserveDirs, "preserve-dirs", false, "preserve subdirectory structure instead of flattening")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

func run(cfg config.Config) error {
	log := logging.New(cfg.Verbose)

	if cfg.FilterEmpty {
		log.Warn("no valid image extensions found in --include filter")
	}

	files, err := pipeline.Discover(cfg.SourceRoot, cfg.AllowedExts)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", cfg.SourceRoot, err)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stdout, "No image files found in the source folder.")
		return nil
	}

	destDir := pipeline.DestDir(cfg)

	if cfg.DryRun {
		tasks := pipeline.Plan(files, cfg, destDir, log)
		printPreview(cfg, destDir, tasks)
		return nil
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("creating destination folder: %w", err)
	}
	tasks := pipeline.Plan(files, cfg, destDir, log)
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stdout, "Nothing to process after planning.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "Found %d images, writing to: %s\n", len(tasks), destDir)

	updates := make(chan pipeline.ProgressUpdate, 64)
	model := tui.NewModel(len(tasks), updates)
	program := tea.NewProgram(model)

	uiDone := make(chan struct{})
	go func() {
		_, _ = program.Run()
		close(uiDone)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats := pipeline.Run(ctx, tasks, cfg.Workers, transform.File, updates, log)

	close(updates)
	<-uiDone

	printSummary(stats)
	return nil
}

func printSummary(stats pipeline.RunStats) {
	rows := []tui.SummaryRow{
		{Label: "Successfully processed", Value: fmt.Sprintf("%d images", stats.Succeeded)},
	}
	if stats.Skipped > 0 {
		rows = append(rows, tui.SummaryRow{Label: "Skipped existing", Value: fmt.Sprintf("%d images", stats.Skipped)})
	}
	if stats.Failed > 0 {
		rows = append(rows, tui.SummaryRow{Label: "Failed to process", Value: fmt.Sprintf("%d images", stats.Failed)})
	}

	if ratio, ok := stats.CompressionRatio(); ok {
		rows = append(rows,
			tui.SummaryRow{Label: "Original size", Value: display.FormatBytes(stats.TotalInputBytes)},
			tui.SummaryRow{Label: "Optimized size", Value: display.FormatBytes(stats.TotalOutputBytes)},
			tui.SummaryRow{Label: "Space saved", Value: fmt.Sprintf("%s (%.1f%% compression)", display.FormatBytes(stats.SpaceSaved()), ratio)},
		)
	}

	fmt.Fprintln(os.Stdout, "\nOptimization complete!")
	fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))
}

func printPreview(cfg config.Config, destDir string, tasks []pipeline.Task) {
	preview := pipeline.BuildPreview(tasks)

	naming := "Sequential"
	if cfg.KeepNames {
		naming = "Keep original"
	}
	layout := "Flattened"
	if cfg.PreserveDirs {
		layout = "Preserved"
	}

	fmt.Fprintln(os.Stdout, previewTitleStyle.Render("=== DRY RUN PREVIEW ==="))
	fmt.Fprintf(os.Stdout, "Would process %d images into %s\n", preview.Total, destDir)
	fmt.Fprintf(os.Stdout, "Format: %s\n", strings.ToUpper(string(cfg.Format)))
	fmt.Fprintf(os.Stdout, "Quality: %d\n", cfg.Quality)
	fmt.Fprintf(os.Stdout, "Max size: %dpx\n", cfg.MaxDimension)
	fmt.Fprintf(os.Stdout, "Processes: %d\n", cfg.Workers)
	fmt.Fprintf(os.Stdout, "Naming: %s\n", naming)
	fmt.Fprintf(os.Stdout, "Directory structure: %s\n", layout)
	if cfg.SkipExisting {
		fmt.Fprintln(os.Stdout, "Skip existing: Yes")
	}

	fmt.Fprintln(os.Stdout, "\nExample output filenames:")
	for _, entry := range preview.Entries {
		fmt.Fprintf(os.Stdout, "  %s %s %s\n",
			previewNameStyle.Render(entry.Input),
			previewDimStyle.Render("->"),
			previewNameStyle.Render(entry.Output),
		)
	}
	if preview.Remaining > 0 {
		fmt.Fprintf(os.Stdout, "  %s\n", previewDimStyle.Render(fmt.Sprintf("... and %d more files", preview.Remaining)))
	}

	fmt.Fprintln(os.Stdout, "\nNo files will be processed in dry-run mode.")
}

var (
	previewTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	previewNameStyle  = lipgloss.NewStyle().Foreground(tui.ColorInk)
	previewDimStyle   = lipgloss.NewStyle().Foreground(tui.ColorDim)
)
