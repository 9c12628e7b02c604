package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kamusis/sdm-cli/internal/catalog"
	"github.com/kamusis/sdm-cli/internal/search"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [filter]",
	Short: "List catalog repositories and their models",
	Long: `Load the catalog and print every repository whose name, or one of
whose model names, contains the filter. Matched text is highlighted.

Example:
  sdm list
  sdm list Weather
  sdm list --domain SmartCities Parking`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

var (
	flagListDomain string
	flagListCount  bool
)

func init() {
	listCmd.Flags().StringVar(&flagListDomain, "domain", "", "Only show repositories in this domain")
	listCmd.Flags().BoolVar(&flagListCount, "count", false, "Print only the number of matching repositories and models")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	pattern := ""
	if len(args) == 1 {
		pattern = args[0]
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	idx, err := s.browser.LoadCatalog(cmdContext(cmd))
	if err != nil {
		return err
	}

	entries := idx.Entries
	if flagListDomain != "" {
		entries = byDomain(entries, flagListDomain)
	}
	entries = search.Filter(entries, pattern)

	if flagListCount {
		fmt.Printf("%d repositories, %d models\n", len(entries), countVisible(entries, pattern))
		return nil
	}

	printSection(fmt.Sprintf("Catalog (%s)", idx.UpdatedDate))
	if len(entries) == 0 {
		printMiss("", fmt.Sprintf("no repository matches %q", pattern))
		return nil
	}
	renderList(os.Stdout, entries, pattern)
	return nil
}

// renderList prints one block per entry: the highlighted repository name, its
// domains and the models visible under pattern. When the repository name
// itself matches, all of its models are shown.
func renderList(w io.Writer, entries []catalog.RepoEntry, pattern string) {
	for _, e := range entries {
		line := "● " + highlightMatches(e.Name, pattern)
		if len(e.Domains) > 0 {
			line += "  " + dimColor.Sprint(strings.Join(e.Domains, ", "))
		}
		fmt.Fprintln(w, line)
		for _, m := range modelsFor(e, pattern) {
			fmt.Fprintf(w, "    - %s\n", highlightMatches(m, pattern))
		}
	}
}

func modelsFor(e catalog.RepoEntry, pattern string) []string {
	if search.Contains(e.Name, pattern) {
		return e.Models
	}
	return search.VisibleModels(e, pattern)
}

func countVisible(entries []catalog.RepoEntry, pattern string) int {
	n := 0
	for _, e := range entries {
		n += len(modelsFor(e, pattern))
	}
	return n
}

func byDomain(entries []catalog.RepoEntry, domain string) []catalog.RepoEntry {
	out := make([]catalog.RepoEntry, 0, len(entries))
	for _, e := range entries {
		if e.HasDomain(domain) {
			out = append(out, e)
		}
	}
	return out
}

// cmdContext returns the command's context, or Background when the command
// was invoked without one (tests call RunE functions directly).
func cmdContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
