package output

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/domaingen/domaingen/internal/core"
	"github.com/domaingen/domaingen/internal/core/engine"
)

// TableFormatter renders results as an ASCII table.
type TableFormatter struct{}

// FormatItems renders stored fragments as a table.
func (f *TableFormatter) FormatItems(items []core.Item) (string, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Type", "Description"})

	for _, item := range items {
		t.AppendRow(table.Row{strconv.FormatInt(item.ID, 10), string(item.Type), item.Description})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d items", len(items))})

	return t.Render(), nil
}

// FormatCandidates renders generated domains as a table.
func (f *TableFormatter) FormatCandidates(candidates []core.Candidate) (string, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Domain", "Status", "Checkout"})

	for _, c := range candidates {
		t.AppendRow(table.Row{
			domainName(c, engine.CombinationExtension),
			availabilityLabel(c.Available),
			c.Checkout,
		})
	}
	t.AppendFooter(table.Row{
		"",
		fmt.Sprintf("%d/%d available", countAvailable(candidates), len(candidates)),
		"",
	})

	return t.Render(), nil
}
