package output

import (
	"fmt"
	"strings"

	"github.com/domaingen/domaingen/internal/core"
	"github.com/domaingen/domaingen/internal/core/engine"
)

// MarkdownFormatter renders results as a markdown table.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) FormatItems(items []core.Item) (string, error) {
	var sb strings.Builder
	sb.WriteString("| ID | Type | Description |\n")
	sb.WriteString("|----|------|-------------|\n")

	for _, item := range items {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s |\n",
			item.ID,
			escapeMarkdownCell(string(item.Type)),
			escapeMarkdownCell(item.Description),
		))
	}

	return sb.String(), nil
}

func (f *MarkdownFormatter) FormatCandidates(candidates []core.Candidate) (string, error) {
	var sb strings.Builder
	sb.WriteString("| Domain | Status | Checkout |\n")
	sb.WriteString("|--------|--------|----------|\n")

	for _, c := range candidates {
		sb.WriteString(fmt.Sprintf("| %s | %s | [register](%s) |\n",
			escapeMarkdownCell(domainName(c, engine.CombinationExtension)),
			availabilityLabel(c.Available),
			c.Checkout,
		))
	}

	sb.WriteString(fmt.Sprintf("\n**Available**: %d/%d\n", countAvailable(candidates), len(candidates)))
	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}
