package main

import (
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/spf13/cobra"

	"github.com/headlessly/hly/internal/cliargs"
	"github.com/headlessly/hly/internal/rpc"
	"github.com/headlessly/hly/internal/search"
)

// Search-specific flag values.
var (
	searchQuery   string
	searchFilters []string
	searchSort    string
	searchLimit   int
	searchJSON    bool
	searchWatch   bool
)

// searchCmd searches entities in one service domain.
var searchCmd = &cobra.Command{
	Use:   "search <service> [query]",
	Short: "Search entities in a service domain",
	Long: `Search a gateway service with free-text queries, field filters, and sort
directives:

  hly search crm "acme corp" --limit 10
  hly search sell --filter stage=Lead --filter value>10000 --sort value:desc
  hly search market --watch

Filters use field<op>value syntax with operators =, >, <, >=, <=, and !=.
Unparseable filter or sort expressions are silently ignored unless the
project config sets strict: true.

With --watch, queries are read line by line from stdin and debounced, so
only the query you settle on reaches the gateway.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchQuery, "query", "", "free-text query (alternative to the positional argument)")
	searchCmd.Flags().StringArrayVar(&searchFilters, "filter", nil, "field filter, e.g. stage=Lead or value>10000 (repeatable)")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "sort directive, e.g. name:desc")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum results (0 = server default)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print raw JSON results")
	searchCmd.Flags().BoolVar(&searchWatch, "watch", false, "read queries from stdin, debounced")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := app.requireAuth(); err != nil {
		return err
	}

	params, err := buildSearchParams(args[1:])
	if err != nil {
		return err
	}

	svc := rpc.BindService(app.caller(), args[0])

	if searchWatch {
		return runSearchWatch(cmd, svc, params)
	}

	result, err := svc.Search(cmd.Context(), params)
	if err != nil {
		return wrapGatewayError(err)
	}
	return printSearchResult(cmd, result)
}

// buildSearchParams assembles the search request from flags and trailing
// query words. Repeated --filter flags merge into one constraint set.
func buildSearchParams(queryWords []string) (rpc.SearchParams, error) {
	query := searchQuery
	if query == "" && len(queryWords) > 0 {
		query = strings.Join(queryWords, " ")
	}

	filter := make(map[string]any)
	for _, expr := range searchFilters {
		var f cliargs.Filter
		if app.cfg.Strict {
			var err error
			f, err = cliargs.ParseFilterStrict(expr)
			if err != nil {
				return rpc.SearchParams{}, exitError(ExitUsage, "hly: %v", err)
			}
		} else {
			f = cliargs.ParseFilter(expr)
			if len(f) == 0 && expr != "" {
				slog.Debug("ignoring unparseable filter expression", "expr", expr)
			}
		}
		maps.Copy(filter, f)
	}

	params := rpc.SearchParams{
		Query: query,
		Limit: app.searchLimit(searchLimit),
	}
	if len(filter) > 0 {
		params.Filter = filter
	}
	if sort := cliargs.ParseSort(searchSort); len(sort) > 0 {
		params.Sort = sort
	}
	return params, nil
}

// runSearchWatch reads queries from stdin, debounced, until EOF. Each
// settled query runs the same search with only the query replaced.
func runSearchWatch(cmd *cobra.Command, svc *rpc.Service, params rpc.SearchParams) error {
	w := cmd.OutOrStdout()
	fmt.Fprintln(cmd.ErrOrStderr(), "watching: type a query and pause to search (Ctrl-D to exit)")

	return search.Watch(cmd.Context(), cmd.InOrStdin(), search.DefaultInterval, func(query string) {
		p := params
		p.Query = query
		result, err := svc.Search(cmd.Context(), p)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "search failed: %v\n", err)
			return
		}
		if err := printResult(w, result); err != nil {
			slog.Warn("write search result", "error", err)
		}
	})
}

func printSearchResult(cmd *cobra.Command, result []byte) error {
	if searchJSON {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(result))
		return err
	}
	return printResult(cmd.OutOrStdout(), result)
}
