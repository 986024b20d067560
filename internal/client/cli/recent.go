package cli

import (
	"context"
	"fmt"
)

// Recent lists remembered search queries, newest first.
func (a *App) Recent(_ context.Context) error {
	queries, err := a.store.RecentQueries()
	if err != nil {
		return err
	}

	if len(queries) == 0 {
		fmt.Fprintln(a.out, "No recent searches")
		return nil
	}
	for i, q := range queries {
		fmt.Fprintf(a.out, "%2d. %s\n", i+1, q)
	}
	return nil
}
