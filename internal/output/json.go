package output

import (
	"encoding/json"

	"github.com/domaingen/domaingen/internal/core"
)

// JSONFormatter renders results as JSON, in the same shape the HTTP API returns.
type JSONFormatter struct {
	Indent bool
}

func (f *JSONFormatter) FormatItems(items []core.Item) (string, error) {
	if items == nil {
		items = []core.Item{}
	}
	return f.marshal(items)
}

func (f *JSONFormatter) FormatCandidates(candidates []core.Candidate) (string, error) {
	if candidates == nil {
		candidates = []core.Candidate{}
	}
	return f.marshal(candidates)
}

func (f *JSONFormatter) marshal(v any) (string, error) {
	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
