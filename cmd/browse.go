package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kamusis/sdm-cli/internal/browser"
	"github.com/kamusis/sdm-cli/internal/catalog"
	"github.com/kamusis/sdm-cli/internal/codegen"
	"github.com/kamusis/sdm-cli/internal/search"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive catalog session",
	Long: `Start a line-oriented session over the catalog. Opened models are
kept for the whole session, so selections made with 'toggle' carry over to
'codegen' and to reopening the model.

Type 'help' inside the session for the list of commands.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmdContext(cmd)
	idx, err := s.browser.LoadCatalog(ctx)
	if err != nil {
		return err
	}
	printOK("", fmt.Sprintf("catalog loaded: %d repositories, %d models (updated %s)",
		len(idx.Entries), idx.ModelCount(), idx.UpdatedDate))

	r := newREPL(s.browser, idx, os.Stdout)
	return r.run(ctx, os.Stdin)
}

const browseHelp = `Commands:
  filter [text]          list repositories matching text (no text clears the filter)
  open [repo] <model>    fetch and show a model; the repository is looked up when omitted
  toggle <prop|index>    flip the selection of a property of the open model
  codegen [decl]         generate declarations for the open model
  cached                 list models opened in this session
  help                   show this help
  quit                   leave the session`

var errQuit = errors.New("quit")

// repl holds the state of one browse session.
type repl struct {
	b       *browser.Browser
	idx     *catalog.Index
	out     io.Writer
	filter  string
	current string
}

func newREPL(b *browser.Browser, idx *catalog.Index, out io.Writer) *repl {
	return &repl{b: b, idx: idx, out: out}
}

// run reads commands from in until EOF or quit. Command errors are printed
// and the session continues.
func (r *repl) run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, r.prompt())
		if !sc.Scan() {
			fmt.Fprintln(r.out)
			return sc.Err()
		}
		err := r.exec(ctx, sc.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(r.out, "  ✗  %v\n", err)
		}
	}
}

func (r *repl) prompt() string {
	if r.current != "" {
		return fmt.Sprintf("sdm [%s]> ", r.current)
	}
	return "sdm> "
}

// exec runs a single command line.
func (r *repl) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	args := fields[1:]
	switch fields[0] {
	case "filter", "f":
		return r.doFilter(strings.Join(args, " "))
	case "open", "o":
		return r.doOpen(ctx, args)
	case "toggle", "t":
		return r.doToggle(args)
	case "codegen", "gen":
		return r.doCodegen(args)
	case "cached":
		return r.doCached()
	case "help", "?":
		fmt.Fprintln(r.out, browseHelp)
		return nil
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (type 'help')", fields[0])
	}
}

func (r *repl) doFilter(pattern string) error {
	r.filter = pattern
	entries := search.Filter(r.idx.Entries, pattern)
	if len(entries) == 0 {
		fmt.Fprintf(r.out, "  -  no repository matches %q\n", pattern)
		return nil
	}
	renderList(r.out, entries, pattern)
	fmt.Fprintf(r.out, "\n%d of %d repositories\n", len(entries), len(r.idx.Entries))
	return nil
}

func (r *repl) doOpen(ctx context.Context, args []string) error {
	var repo, model string
	switch len(args) {
	case 1:
		model = args[0]
		e, ok := r.repoOf(model)
		if !ok {
			return fmt.Errorf("model %q is not in the catalog", model)
		}
		repo = e.Name
	case 2:
		repo, model = repoShortName(args[0]), args[1]
	default:
		return errors.New("usage: open [repo] <model>")
	}

	m, err := r.b.Model(ctx, repo, model)
	if err != nil {
		return err
	}
	r.current = model
	renderModel(r.out, m, false)
	return nil
}

// repoOf returns the first repository publishing model, preferring those
// visible under the current filter.
func (r *repl) repoOf(model string) (catalog.RepoEntry, bool) {
	var fallback *catalog.RepoEntry
	for i, e := range r.idx.Entries {
		if !e.HasModel(model) {
			continue
		}
		if search.Matches(e, r.filter) {
			return e, true
		}
		if fallback == nil {
			fallback = &r.idx.Entries[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return catalog.RepoEntry{}, false
}

func (r *repl) doToggle(args []string) error {
	if r.current == "" {
		return errors.New("no model open (use 'open <model>')")
	}
	if len(args) == 0 {
		return errors.New("usage: toggle <property|index>...")
	}
	for _, a := range args {
		var ok bool
		if i, err := strconv.Atoi(a); err == nil {
			ok = r.b.Toggle(r.current, i)
		} else {
			ok = r.b.ToggleByName(r.current, a)
		}
		if !ok {
			return fmt.Errorf("no property %q in %s", a, r.current)
		}
	}
	m, _ := r.b.Cached(r.current)
	renderModel(r.out, m, false)
	return nil
}

func (r *repl) doCodegen(args []string) error {
	if r.current == "" {
		return errors.New("no model open (use 'open <model>')")
	}
	kw := ""
	if len(args) > 0 {
		kw = args[0]
	}
	decl, err := codegen.ParseDeclaration(kw)
	if err != nil {
		return err
	}
	m, _ := r.b.Cached(r.current)
	out := codegen.Generate(m, decl)
	if out == "" {
		fmt.Fprintln(r.out, "  -  no selected properties")
		return nil
	}
	fmt.Fprint(r.out, out)
	return nil
}

func (r *repl) doCached() error {
	names := r.b.CachedModels()
	if len(names) == 0 {
		fmt.Fprintln(r.out, "  -  no models opened yet")
		return nil
	}
	for _, n := range names {
		m, _ := r.b.Cached(n)
		fmt.Fprintf(r.out, "  ~  %s (%d selected)\n", n, len(m.Checked()))
	}
	return nil
}
