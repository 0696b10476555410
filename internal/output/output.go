package output

import (
	"fmt"
	"strings"

	"github.com/domaingen/domaingen/internal/core"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter renders stored items and generated candidates.
type Formatter interface {
	FormatItems(items []core.Item) (string, error)
	FormatCandidates(candidates []core.Candidate) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

func availabilityLabel(available bool) string {
	if available {
		return "available"
	}
	return "taken"
}

func countAvailable(candidates []core.Candidate) int {
	n := 0
	for _, c := range candidates {
		if c.Available {
			n++
		}
	}
	return n
}

// domainName joins name and extension; combination candidates carry no
// extension and are always checked under .com.br.
func domainName(c core.Candidate, fallbackExtension string) string {
	ext := c.Extension
	if ext == "" {
		ext = fallbackExtension
	}
	return c.Name + ext
}
