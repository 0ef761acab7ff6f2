package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgallion1/pagetoc/internal/page"
	"github.com/dgallion1/pagetoc/internal/toc"
	"github.com/spf13/cobra"
)

var (
	// sectionStyle for top-level entries
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	// subsectionStyle for nested entries
	subsectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	// anchorStyle for the #id suffix
	anchorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// placeholderStyle for entries filling a skipped level
	placeholderStyle = lipgloss.NewStyle().
				Italic(true).
				Foreground(lipgloss.Color("240"))
)

var outlineJSON bool

var outlineCmd = &cobra.Command{
	Use:   "outline FILE",
	Short: "Print the heading outline of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		out, err := page.Render(args[0], data, pageOptions(false))
		if err != nil {
			return fmt.Errorf("outline %s: %w", args[0], err)
		}

		w := cmd.OutOrStdout()
		if outlineJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"rendered": out.Result.Rendered,
				"sections": out.Sections(),
			})
		}
		if !out.Result.Rendered {
			fmt.Fprintf(w, "%s\n", anchorStyle.Render("no #"+cfg.ContainerID+" element, nothing to outline"))
			return nil
		}
		writeOutline(w, out.Sections(), 0)
		return nil
	},
}

func init() {
	outlineCmd.Flags().BoolVar(&outlineJSON, "json", false, "print the outline as JSON")
	rootCmd.AddCommand(outlineCmd)
}

// writeOutline prints one line per section, indented two spaces per level.
func writeOutline(w io.Writer, sections []*toc.Section, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, s := range sections {
		var label string
		switch {
		case s.ID == "" && s.Text == "":
			label = placeholderStyle.Render("(untitled)")
		case depth == 0:
			label = sectionStyle.Render(s.Text) + " " + anchorStyle.Render("#"+s.ID)
		default:
			label = subsectionStyle.Render(s.Text) + " " + anchorStyle.Render("#"+s.ID)
		}
		fmt.Fprintf(w, "%s- %s\n", indent, label)
		writeOutline(w, s.Children, depth+1)
	}
}
