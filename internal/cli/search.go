package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pantry/internal/domain"
	"pantry/internal/items"
	"pantry/internal/mealplan"
)

type searchOptions struct {
	vegan      bool
	glutenFree bool
	pages      int
	pageSize   int
}

func newSearchCommand(a *app) *cobra.Command {
	opts := &searchOptions{}
	cmd := &cobra.Command{
		Use:   "search [TERM]",
		Short: "Search recipes without the interactive UI",
		Long: `Search recipes and print them, one per line.

Pages are fetched the same way the planner fetches them while scrolling.
--pages 0 keeps fetching until the results run out.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			return a.runSearch(cmd, term, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.vegan, "vegan", false, "Only vegan recipes")
	cmd.Flags().BoolVar(&opts.glutenFree, "gluten-free", false, "Only gluten-free recipes")
	cmd.Flags().IntVar(&opts.pages, "pages", 1, "Pages to fetch, 0 for all")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "Results per page (default from config)")
	return cmd
}

func (a *app) runSearch(cmd *cobra.Command, term string, opts *searchOptions) error {
	if opts.pages < 0 {
		return fmt.Errorf("--pages must be >= 0 (got %d)", opts.pages)
	}
	pageSize := a.cfg.Search.PageSize
	if opts.pageSize > 0 {
		pageSize = opts.pageSize
	}

	query := mealplan.Query{Term: term, Filters: mealplan.Filters{
		Vegan:      opts.vegan || a.cfg.Search.DefaultVegan,
		GlutenFree: opts.glutenFree || a.cfg.Search.DefaultGlutenFree,
	}}
	s := mealplan.NewState(query, pageSize)
	coord := mealplan.NewCoordinator(a.client, a.logger)

	outcome := coord.Run(cmd.Context(), s, s.Submit())
	for outcome == mealplan.OutcomeAppended && (opts.pages == 0 || s.PagesLoaded() < opts.pages) {
		req, ok := s.Advance()
		if !ok {
			break
		}
		outcome = coord.Run(cmd.Context(), s, req)
	}
	if s.Pagination.Err != nil {
		return fmt.Errorf("%s (%w)", mealplan.UserMessage(s.Pagination.Err), s.Pagination.Err)
	}

	out := cmd.OutOrStdout()
	printRecipes(out, s.Results)
	switch {
	case len(s.Results) == 0:
		fmt.Fprintln(out, "No recipes found.")
	case s.Phase() == mealplan.PhaseExhausted:
		fmt.Fprintf(out, "%d recipes.\n", len(s.Results))
	default:
		fmt.Fprintf(out, "%d recipes, more available (use --pages).\n", len(s.Results))
	}
	return nil
}

func printRecipes(w io.Writer, recipes []domain.Recipe) {
	for _, r := range recipes {
		line := fmt.Sprintf("%4d  %s", r.ID, r.Name)
		if tags := items.Tags(r); len(tags) > 0 {
			line += "  [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Fprintln(w, line)
	}
}
