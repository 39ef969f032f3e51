package expense

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

var csvHeader = []string{"id", "date", "value", "category_id", "category", "user_id"}

// EncodeCSV renders items as CSV with a header row. Values keep two
// decimal places.
func EncodeCSV(items []Expense) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, e := range items {
		record := []string{
			strconv.FormatInt(e.ID, 10),
			e.Date.String(),
			e.Value.StringFixed(2),
			strconv.FormatInt(e.Category.ID, 10),
			e.Category.Name,
			strconv.FormatInt(e.UserID, 10),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
