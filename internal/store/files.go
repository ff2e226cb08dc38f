package store

import (
	"encoding/json"
	"os"
)

// readAll loads a JSON array file. A missing, unreadable or corrupt file
// reads as an empty collection rather than an error.
func readAll[T any](path string) []T {
	data, err := os.ReadFile(path)
	if err != nil {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return []T{}
	}
	return items
}

// writeAll rewrites the whole file as a pretty-printed JSON array. An
// empty collection is written as [], never null.
func writeAll[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
