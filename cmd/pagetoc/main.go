package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgallion1/pagetoc/internal/config"
	"github.com/dgallion1/pagetoc/internal/page"
	"github.com/dgallion1/pagetoc/internal/toc"
	"github.com/dgallion1/pagetoc/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfg config.Config

	containerID string
	idPrefix    string
)

var rootCmd = &cobra.Command{
	Use:   "pagetoc",
	Short: "Insert a table of contents into HTML pages",
	Long: `pagetoc scans the h2 and h3 headings of a page, gives every heading an id,
and appends a nested list of links to the element with id "toc".

Markdown, plain text, DOCX and PDF files are converted to HTML pages first.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("container") {
			cfg.ContainerID = containerID
		}
		if cmd.Flags().Changed("prefix") {
			cfg.IDPrefix = idPrefix
		}
		return cfg.Validate()
	},
}

func init() {
	cfg = config.Load()

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("pagetoc %s\n", version.String()))

	rootCmd.PersistentFlags().StringVar(&containerID, "container", cfg.ContainerID, "id of the element that receives the table of contents")
	rootCmd.PersistentFlags().StringVar(&idPrefix, "prefix", cfg.IDPrefix, "prefix for generated heading ids")
}

// pageOptions maps the effective configuration onto page options.
func pageOptions(replace bool) page.Options {
	return page.Options{
		TOC: toc.Options{
			ContainerID: cfg.ContainerID,
			IDPrefix:    cfg.IDPrefix,
			Replace:     replace,
		},
		PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
	}
}

func newLogger(json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if json {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
