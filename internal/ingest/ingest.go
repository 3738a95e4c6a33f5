// Package ingest reads activity definitions from tabular and JSON sources.
// Records come back in source order; resolving predecessor names is left to
// network.FromRecords.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/network"
)

// Format names an input encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatCSV, FormatJSON:
		return f, nil
	case "auto":
		return FormatAuto, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use csv or json)", s)
	}
}

// DetectFormat picks a format from a file extension. Anything that is not
// .json is read as the semicolon-separated table.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatCSV
}

// File reads the records stored at path. FormatAuto selects by extension.
func File(path string, format Format) ([]network.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read activities: %w", err)
	}
	if format == FormatAuto {
		format = DetectFormat(path)
	}

	var records []network.Record
	switch format {
	case FormatJSON:
		records, err = ParseJSON(data)
	default:
		records, err = ParseCSV(strings.NewReader(string(data)))
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// Load reads path and builds the network in one step.
func Load(path string, format Format) (*network.Network, error) {
	records, err := File(path, format)
	if err != nil {
		return nil, err
	}
	return network.FromRecords(records)
}
