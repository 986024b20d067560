package cli

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"resourcehub/internal/client/models"
)

// termSink renders search client updates to the terminal. It is called from
// the search client's goroutines, hence the mutex around the writer.
type termSink struct {
	mu  sync.Mutex
	out io.Writer
}

func newTermSink(out io.Writer) *termSink {
	return &termSink{out: out}
}

func (s *termSink) ResultsChanged(results []models.SearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(results) == 0 {
		fmt.Fprintln(s.out, "no results")
		return
	}
	renderResults(s.out, results)
}

func (s *termSink) LoadingChanged(loading bool) {
	if !loading {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, "searching...")
}

func (s *termSink) SearchFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, color.Red.Render("search failed: "+err.Error()))
}

func renderResults(w io.Writer, results []models.SearchResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Title", "Type", "Subject", "Rating", "Downloads"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for i, r := range results {
		rating := ""
		if r.RatingCount > 0 {
			rating = fmt.Sprintf("%.1f (%d)", r.Rating, r.RatingCount)
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			r.Title,
			r.ResourceType,
			r.Subject,
			rating,
			strconv.Itoa(r.DownloadCount),
		})
	}
	table.Render()
}

func (a *App) renderSelection(r models.SearchResult) {
	fmt.Fprintln(a.out, color.Green.Render("Selected: "+r.Title))
	if r.Owner != "" {
		fmt.Fprintln(a.out, "  by:   "+r.Owner)
	}
	if r.PrimaryFileRef != "" {
		fmt.Fprintln(a.out, "  file: "+r.PrimaryFileRef)
	}
	if r.Preview != "" {
		fmt.Fprintln(a.out, "  "+r.Preview)
	}
}
