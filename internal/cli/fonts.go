package cli

import (
	"context"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/textpics/pkg/errors"
	"github.com/matzehuels/textpics/pkg/fonts"
)

// fontsOpts holds the command-line flags for the fonts command.
type fontsOpts struct {
	recursive bool     // search subdirectories
	names     []string // extra builtin or installed fonts
	sample    string   // text whose glyph coverage is checked
}

// fontRow is one line of the fonts listing.
type fontRow struct {
	Name    string
	Source  string
	Missing string // runes of the sample the font has no glyph for
	Err     error
}

// fontsCommand creates the fonts command, which lists the fonts a
// directory and name selection resolves to.
func (c *CLI) fontsCommand() *cobra.Command {
	var opts fontsOpts

	cmd := &cobra.Command{
		Use:   "fonts [FONTS_DIR]",
		Short: "List the fonts a run would use",
		Long: `List every .ttf font found in FONTS_DIR and every --font name, check that
each one parses, and optionally report which characters of --sample it
cannot draw.`,
		Example: `  textpics fonts fonts/ --recursive
  textpics fonts --font goregular --sample "naïve café"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			rows, err := listFonts(cmd.Context(), dir, opts)
			if err != nil {
				return err
			}
			printFontTable(rows, opts.sample != "")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "search subdirectories")
	cmd.Flags().StringArrayVar(&opts.names, "font", nil, "builtin or installed font name (repeatable)")
	cmd.Flags().StringVar(&opts.sample, "sample", "", "report characters of this text the font cannot draw")

	cmd.ValidArgsFunction = completeFontDir
	_ = cmd.RegisterFlagCompletionFunc("font", completeBuiltinFonts)

	return cmd
}

// listFonts resolves and parses the selected fonts. Fonts that fail to parse
// are reported in their row rather than aborting the listing.
func listFonts(ctx context.Context, dir string, opts fontsOpts) ([]fontRow, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var refs []fonts.Ref
	if dir == "" && len(opts.names) == 0 {
		for _, name := range fonts.BuiltinNames() {
			ref, _ := fonts.Builtin(name)
			refs = append(refs, ref)
		}
	}
	if dir != "" {
		if err := errors.ValidateDir(dir, "font directory"); err != nil {
			return nil, err
		}
		found, err := fonts.Discover(dir, opts.recursive)
		if err != nil {
			return nil, err
		}
		refs = append(refs, found...)
	}
	for _, name := range opts.names {
		ref, err := fonts.Resolve(name)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if len(refs) == 0 {
		return nil, errors.New(errors.ErrCodeNoFonts, "no %s fonts found in %s", fonts.Extension, dir)
	}

	rows := make([]fontRow, 0, len(refs))
	for _, ref := range refs {
		row := fontRow{Name: ref.Name, Source: ref.Path}
		if ref.Path == "" {
			row.Source = "builtin"
		}
		f, err := fonts.Load(ref)
		if err != nil {
			logger.Warn("unreadable font", "font", ref.Name, "err", err)
			row.Err = err
			rows = append(rows, row)
			continue
		}
		row.Missing = missingGlyphs(f, opts.sample)
		_ = f.Close()
		rows = append(rows, row)
	}
	prog.done("checked fonts")
	return rows, nil
}

// missingGlyphs returns the distinct non-space runes of sample that f
// cannot draw, in order of first appearance.
func missingGlyphs(f *fonts.Font, sample string) string {
	var b strings.Builder
	seen := make(map[rune]bool)
	for _, r := range sample {
		if unicode.IsSpace(r) || seen[r] {
			continue
		}
		seen[r] = true
		if !f.HasGlyph(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func printFontTable(rows []fontRow, withSample bool) {
	headers := []string{"Font", "Source", "Status"}
	if withSample {
		headers = append(headers, "Missing")
	}

	data := make([][]string, len(rows))
	for i, r := range rows {
		status := iconSuccess
		if r.Err != nil {
			status = iconError + " " + errors.UserMessage(r.Err)
		}
		line := []string{r.Name, r.Source, status}
		if withSample {
			line = append(line, r.Missing)
		}
		data[i] = line
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case col == 2 && rows[row].Err != nil:
				return base.Foreground(colorRed)
			case col == 2:
				return base.Foreground(colorGreen)
			case col == 3:
				return base.Foreground(colorYellow)
			case col == 1:
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		})

	printTable(t)
	printDetail("%d font(s)", len(rows))
}
