package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/kherve/lazycrm/internal/models"
)

// ExportToCSV exports records to a CSV file. Columns follow the field
// definitions of the entity's schema, in order.
func ExportToCSV(fields []models.FieldDefinition, records []models.Record, path string) error {
	// Create the file
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Label
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write each record
	for _, rec := range records {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = rec.Get(f.Name)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

// ExportToJSON exports records to a JSON file, pretty-printed
func ExportToJSON(records []models.Record, path string) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}
