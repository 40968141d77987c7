// Package ingest reads tokenization components from CSV exports.
//
// The expected layout is a header row followed by rows of
// main type, sub type, components.  Extra columns are ignored.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sengkeat-dex/Tokenize/models"
)

const headerMainType = "Main Type"

// ParseCSV skips the header row, any repeated header row, and rows with
// fewer than three columns.
func ParseCSV(r io.Reader) ([]models.NewComponent, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return []models.NewComponent{}, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	components := []models.NewComponent{}
	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if len(record) < 3 || strings.TrimSpace(record[0]) == headerMainType {
			skipped++
			continue
		}
		components = append(components, models.NewComponent{
			MainType:   strings.TrimSpace(record[0]),
			SubType:    strings.TrimSpace(record[1]),
			Components: strings.TrimSpace(record[2]),
		})
	}

	log.Debug().Int("components", len(components)).Int("skipped", skipped).Msg("parsed csv")
	return components, nil
}

func LoadFile(path string) ([]models.NewComponent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open components csv: %w", err)
	}
	defer f.Close()

	components, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return components, nil
}
