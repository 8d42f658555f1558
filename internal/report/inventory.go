package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/groupgrep/groupgrep/internal/gitlab"
	"github.com/groupgrep/groupgrep/pkg/shared/files"
)

// InventoryCSVHeader is the schema of the flattened inventory artifact.
var InventoryCSVHeader = []string{"Project ID", "Project Name"}

// WriteInventoryJSON persists the provider's untouched project objects
// as a single JSON array, written once before any search begins.
func WriteInventoryJSON(path string, raw []json.RawMessage) error {
	if raw == nil {
		raw = []json.RawMessage{}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("error marshaling the inventory: %w", err)
	}
	if err := files.WriteJsonFile(path, data); err != nil {
		return fmt.Errorf("error writing inventory to %q: %w", path, err)
	}
	return nil
}

// WriteInventoryCSV persists the flattened project inventory.
func WriteInventoryCSV(path string, projects []gitlab.Project) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create inventory file %q: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(InventoryCSVHeader); err != nil {
		return fmt.Errorf("failed to write inventory header: %w", err)
	}
	for _, project := range projects {
		if err := w.Write([]string{strconv.Itoa(project.ID), project.Name}); err != nil {
			return fmt.Errorf("failed to write inventory row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
