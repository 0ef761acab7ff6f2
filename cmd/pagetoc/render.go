package main

import (
	"fmt"
	"os"

	"github.com/dgallion1/pagetoc/internal/page"
	"github.com/spf13/cobra"
)

var (
	renderOut     string
	renderReplace bool
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render one file to HTML with a table of contents",
	Long: `Render FILE to HTML and append the table of contents to its container.

HTML files without a container are written out unchanged. Running render on
its own output appends a second list unless --replace is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		out, err := page.Render(args[0], data, pageOptions(renderReplace))
		if err != nil {
			return fmt.Errorf("render %s: %w", args[0], err)
		}

		log := newLogger(false)
		if !out.Result.Rendered {
			log.Warn("no toc container found", "file", args[0], "container", cfg.ContainerID)
		} else {
			log.Debug("rendered toc", "file", args[0], "sections", out.Result.Tree.Len())
		}

		if renderOut == "" || renderOut == "-" {
			_, err = cmd.OutOrStdout().Write(out.HTML)
			return err
		}
		return os.WriteFile(renderOut, out.HTML, 0o644)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "", "output file (default stdout)")
	renderCmd.Flags().BoolVar(&renderReplace, "replace", false, "clear the container before appending")
	rootCmd.AddCommand(renderCmd)
}
