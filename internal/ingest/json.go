package ingest

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/network"
)

// ParseJSON reads an array of {"name", "duration", "predecessors"} objects.
// A top-level object with an "activities" array is accepted too, and
// predecessors may also be given as one comma-separated string.
func ParseJSON(data []byte) ([]network.Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}

	root := gjson.ParseBytes(data)
	if root.IsObject() {
		root = root.Get("activities")
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("expected an array of activities")
	}

	var (
		records []network.Record
		err     error
		idx     int
	)
	root.ForEach(func(_, item gjson.Result) bool {
		idx++

		name := item.Get("name")
		if name.Type != gjson.String || name.String() == "" {
			err = fmt.Errorf("activity %d: missing name", idx)
			return false
		}
		duration := item.Get("duration")
		if duration.Type != gjson.Number || duration.Float() != float64(duration.Int()) {
			err = fmt.Errorf("activity %d (%s): duration must be an integer", idx, name.String())
			return false
		}

		rec := network.Record{Name: name.String(), Duration: int(duration.Int())}
		preds := item.Get("predecessors")
		if preds.Type == gjson.String {
			rec.Predecessors = splitNames(preds.String())
		} else {
			for _, p := range preds.Array() {
				rec.Predecessors = append(rec.Predecessors, p.String())
			}
		}
		records = append(records, rec)
		return true
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
