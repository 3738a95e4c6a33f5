package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/network"
)

// ParseCSV reads "name;duration;pred1,pred2" lines. The third field may be
// empty or absent. Lines starting with '#' are comments.
func ParseCSV(r io.Reader) ([]network.Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var records []network.Record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected name;duration[;predecessors], got %d field(s)", line, len(fields))
		}

		name := strings.TrimSpace(fields[0])
		if name == "" {
			return nil, fmt.Errorf("line %d: empty activity name", line)
		}
		duration, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid duration for %s: %w", line, name, err)
		}

		rec := network.Record{Name: name, Duration: duration}
		if len(fields) > 2 {
			rec.Predecessors = splitNames(fields[2])
		}
		records = append(records, rec)
	}
	return records, nil
}

func splitNames(field string) []string {
	var names []string
	for _, part := range strings.Split(field, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}
