package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/naka-gawa/pr-insights/internal/domain"
)

// searchPage is the envelope returned by the search/issues endpoint.
type searchPage struct {
	Items []rawIssue `json:"items"`
}

// LoadRecords reads previously exported search results and normalizes them.
// The input is either a JSON array of issue objects or a search response
// object with an "items" array.
func LoadRecords(r io.Reader) ([]domain.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	var items []rawIssue
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &items)
	} else {
		var page searchPage
		err = json.Unmarshal(data, &page)
		items = page.Items
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	records := make([]domain.Record, 0, len(items))
	for _, item := range items {
		records = append(records, normalize(item))
	}
	return records, nil
}
