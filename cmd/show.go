package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/kamusis/sdm-cli/internal/schema"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <repo> <model>",
	Short: "Show the normalized schema of a model",
	Long: `Fetch a model document, normalize it and print its metadata and
property list. Required properties are marked with * and start out selected;
selected properties are listed first.

Example:
  sdm show dataModel.Weather WeatherObserved
  sdm show Weather WeatherObserved --toggle pressure --toggle dateObserved`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

var (
	flagShowToggle  []string
	flagShowChecked bool
)

func init() {
	showCmd.Flags().StringSliceVar(&flagShowToggle, "toggle", nil, "Flip the selection of a property (repeatable)")
	showCmd.Flags().BoolVar(&flagShowChecked, "selected", false, "Only list selected properties")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	m, err := openModel(cmdContext(cmd), s, args[0], args[1], flagShowToggle)
	if err != nil {
		return err
	}
	renderModel(os.Stdout, m, flagShowChecked)
	return nil
}

// openModel fetches repo/model through the session cache, then applies the
// requested toggles. Unknown property names are reported and skipped.
func openModel(ctx context.Context, s *session, repo, model string, toggles []string) (schema.NormalizedModel, error) {
	repo = repoShortName(repo)
	m, err := s.browser.Model(ctx, repo, model)
	if err != nil {
		return schema.NormalizedModel{}, err
	}
	if len(toggles) == 0 {
		return m, nil
	}
	for _, name := range toggles {
		if !s.browser.ToggleByName(model, name) {
			printWarn(model, fmt.Sprintf("no property named %q", name))
		}
	}
	m, _ = s.browser.Cached(model)
	return m, nil
}

// repoShortName accepts both the catalog form "dataModel.Weather" and the
// bare "Weather".
func repoShortName(repo string) string {
	if _, after, ok := strings.Cut(repo, "."); ok {
		return after
	}
	return repo
}

// renderModel prints the model header followed by its property table.
func renderModel(w io.Writer, m schema.NormalizedModel, selectedOnly bool) {
	fmt.Fprintf(w, "📦 Model: %s\n", m.Name)
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-13s %s\n", label+":", oneLine(value))
		}
	}
	field("Type", m.Type)
	field("Version", m.Version)
	field("Summary", m.Description)
	field("Derived from", m.DerivedFrom)
	field("Tags", m.Tags)
	field("License", m.LicenseURL)
	field("Schema", m.SchemaRef)
	field("Disclaimer", m.Disclaimer)

	checked := len(m.Checked())
	fmt.Fprintf(w, "\nProperties (%d, %d selected):\n", len(m.Properties), checked)
	if len(m.Properties) == 0 {
		fmt.Fprintln(w, "  (none)")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, p := range m.Properties {
		if selectedOnly && !p.Checked {
			continue
		}
		name := p.Name
		if p.Required {
			name = "*" + name
		}
		fmt.Fprintf(tw, "  %d.\t%s\t%s\t%s\t%s\n", i, checkMark(p.Checked), name, propertyType(p), truncate(oneLine(deref(p.Description)), 72))
	}
	_ = tw.Flush()

	if m.SourceURL != "" {
		fmt.Fprintln(w)
		fprintDim(w, "Source: %s", m.SourceURL)
	}
}

// propertyType prefers the JSON schema type and falls back to the x-ngsi one.
func propertyType(p schema.NormalizedProperty) string {
	switch {
	case p.Type != nil:
		if p.Format != nil {
			return *p.Type + " (" + *p.Format + ")"
		}
		return *p.Type
	case p.NGSI != nil && p.NGSI.Type != nil:
		return *p.NGSI.Type
	case len(p.AnyOf) > 0:
		return "anyOf"
	case len(p.OneOf) > 0:
		return "oneOf"
	default:
		return "-"
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
