package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/kamusis/sdm-cli/internal/search"
	"github.com/spf13/cobra"
)

var (
	flagSearchK      int
	flagSearchDomain string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find models whose name, or whose repository name, contains the query",
	Long: `Search the catalog for models. A model is a hit when its own name
contains the query, or when its repository name does. Matching is literal
and case-sensitive.

Example:
  sdm search Parking
  sdm search --k 50 Observed`,
	Args: cobra.MinimumNArgs(0),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&flagSearchK, "k", 20, "Number of results to show (0 for all)")
	searchCmd.Flags().StringVar(&flagSearchDomain, "domain", "", "Only search repositories in this domain")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	query := strings.Join(args, " ")

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
	if flagSearchDomain != "" {
		entries = byDomain(entries, flagSearchDomain)
	}

	results := search.FindModels(entries, query, flagSearchK)
	printSearchResults(os.Stdout, query, results)
	return nil
}

// printSearchResults groups results by repository, keeping the sorted order
// FindModels returned.
func printSearchResults(w io.Writer, query string, results []search.Result) {
	fmt.Fprintf(w, "\nsdm search %q\n\n", query)
	fmt.Fprintf(w, "Results (%d found):\n", len(results))
	if len(results) == 0 {
		return
	}

	var repo string
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	n := 0
	for _, r := range results {
		if r.Repo != repo {
			_ = tw.Flush()
			repo = r.Repo
			n = 0
			fmt.Fprintf(w, "\n%s:\n", highlightMatches(repo, query))
		}
		n++
		fmt.Fprintf(tw, "  %d.\t%s\t(%s)\n", n, highlightMatches(r.Model, query), r.Why)
	}
	_ = tw.Flush()
}
