package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"resourcehub/internal/client/models"
	"resourcehub/internal/client/search"
)

// Search runs an interactive typeahead session on top of the incremental
// search client. Every entered line replaces the query; the debounced client
// decides when to actually hit the network and discards stale answers.
//
// Session commands:
//
//	:n / :p   move the selection down / up
//	:open     open the selected (or first) result
//	:q        leave the session, keeping nothing in flight
func (a *App) Search(ctx context.Context) error {
	sink := newTermSink(a.out)
	sc := search.NewClient(a.client, sink, a.log,
		search.WithDebounce(a.config.SearchDebounce),
		search.WithLimit(a.config.SearchLimit),
		search.WithSelectionHandler(func(r models.SearchResult) {
			a.renderSelection(r)
		}),
	)
	defer sc.Close()

	fmt.Fprintln(a.out, "Interactive search. Type a query; :n/:p move, :open selects, :q quits.")

	for {
		line, err := GetSimpleText(a.reader, "", a.out)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch line {
		case ":q":
			sc.Escape()
			return nil

		case ":n":
			sc.MoveDown()
			a.printActive(sc)

		case ":p":
			sc.MoveUp()
			a.printActive(sc)

		case ":open":
			sc.Enter()

		default:
			if line != "" {
				_ = a.store.RememberQuery(line)
			}
			sc.QueryChanged(line)
		}
	}
}

func (a *App) printActive(sc *search.Client) {
	idx := sc.ActiveIndex()
	results := sc.Results()
	if idx < 0 || idx >= len(results) {
		return
	}
	fmt.Fprintf(a.out, "[%d/%d] %s\n", idx+1, len(results), results[idx].Title)
}
