package load

import (
	"encoding/json"
	"fmt"

	"github.com/kentontilford/hfsrb-final/internal/aggregate"
)

// Input documents are one JSON file per facility per year with an
// administrative meta block and a type-specific payload block. Older export
// runs wrote the payload fields at the top level with no wrapper; both
// shapes are accepted.
type document struct {
	Meta    map[string]any `json:"meta"`
	Payload map[string]any `json:"payload"`
}

// ParseDocument decodes one schema_payload.json into a flat raw row.
// Resolution order for identity fields: payload value, then meta value.
// The street address may arrive as address_street or address_line1.
func ParseDocument(data []byte) (aggregate.Row, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	row := aggregate.Row{}
	if doc.Payload != nil {
		for k, v := range doc.Payload {
			row[k] = v
		}
	} else {
		// No wrapper: treat the whole object as the payload.
		var flat map[string]any
		if err := json.Unmarshal(data, &flat); err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
		for k, v := range flat {
			if k == "meta" {
				continue
			}
			row[k] = v
		}
	}

	for _, key := range []string{"facility_id", "facility_name"} {
		if _, ok := row[key]; !ok {
			if v, ok := doc.Meta[key]; ok {
				row[key] = v
			}
		}
	}
	if _, ok := row["address_street"]; !ok {
		if v, ok := row["address_line1"]; ok {
			row["address_street"] = v
		}
	}

	return row, nil
}

// ValidateRow checks the record-level preconditions common to all facility
// types. A row that fails here is skipped and counted, never fatal.
func ValidateRow(row aggregate.Row) error {
	id := aggregate.PickString(row, "facility_id", "ID #")
	if id == nil {
		return fmt.Errorf("missing facility_id")
	}
	return nil
}
