package upstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"SignalMix/internal/domain/models"
)

var errNoDate = errors.New("payload has no date field")

// DecodeTable parses a JSON array of records into a table indexed by the
// "date" field. Every other field becomes a numeric column in first-seen
// order; null and missing cells are NaN.
func DecodeTable(body []byte) (*models.Table, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	t := models.NewTable()
	for row := 0; dec.More(); row++ {
		if err := decodeRecord(dec, t, row); err != nil {
			return nil, err
		}
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, errNoDate
	}
	return t, nil
}

type cell struct {
	column string
	value  float64
}

func decodeRecord(dec *json.Decoder, t *models.Table, row int) error {
	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("record %d: %w", row, err)
	}

	var (
		date    string
		hasDate bool
		cells   []cell
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("record %d: %w", row, err)
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("record %d field %q: %w", row, key, err)
		}

		if key == models.DateField {
			date, err = parseDate(raw)
			if err != nil {
				return fmt.Errorf("record %d: %w", row, err)
			}
			hasDate = true
			continue
		}

		v, err := parseNumber(raw)
		if err != nil {
			return fmt.Errorf("record %d field %q: %w", row, key, err)
		}
		cells = append(cells, cell{column: key, value: v})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return fmt.Errorf("record %d: %w", row, err)
	}
	if !hasDate {
		return fmt.Errorf("record %d: %w", row, errNoDate)
	}

	t.AddDate(date)
	for _, c := range cells {
		t.Set(date, c.column, c.value)
	}
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("decode payload: expected %q, got %v", want, tok)
	}
	return nil
}

// parseDate accepts a JSON string or number and returns its text.
func parseDate(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", errors.New("date is null")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("date must be a string or number, got %s", raw)
}

func parseNumber(raw json.RawMessage) (float64, error) {
	if isNull(raw) {
		return math.NaN(), nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("value must be numeric, got %s", raw)
	}
	return v, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
