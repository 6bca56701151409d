// Package snapshot writes the collected items to a JSON file, for dry runs
// and for debugging extraction changes against a known-good capture.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"canvassync/lib/scrapers/canvas/planner"
)

func Write(path string, items []planner.Item) error {
	if items == nil {
		items = []planner.Item{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func Read(path string) ([]planner.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []planner.Item
	err = json.Unmarshal(data, &items)
	if err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	return items, nil
}
