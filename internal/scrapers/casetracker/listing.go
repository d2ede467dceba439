package casetracker

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"csstats-backend/internal/timeseries"
)

const (
	columnCaseName = "Case Name"
	columnUnboxing = "Unboxing Number"
)

// SchemaError is returned when a listing lacks a required column.
type SchemaError struct {
	Source string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("casetracker: %s: %s", e.Source, e.Reason)
}

type listingRow struct {
	name  string
	count float64
}

func parseCount(text string) (float64, error) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if text == "" {
		return timeseries.Missing(), nil
	}
	return strconv.ParseFloat(text, 64)
}

// parseListing reads a CSV with at least the "Case Name" and
// "Unboxing Number" columns, other columns are ignored.
func parseListing(source string, body []byte) ([]listingRow, error) {
	body = bytes.TrimPrefix(body, []byte("\ufeff"))

	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Source: source, Reason: "empty listing"}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", source, err)
	}

	nameIdx, countIdx := -1, -1
	for i, column := range header {
		switch strings.TrimSpace(column) {
		case columnCaseName:
			nameIdx = i
		case columnUnboxing:
			countIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, &SchemaError{Source: source, Reason: fmt.Sprintf("missing column %q", columnCaseName)}
	}
	if countIdx < 0 {
		return nil, &SchemaError{Source: source, Reason: fmt.Sprintf("missing column %q", columnUnboxing)}
	}

	var rows []listingRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", source, err)
		}

		name := ""
		if nameIdx < len(record) {
			name = strings.TrimSpace(record[nameIdx])
		}
		if name == "" {
			continue
		}

		count := timeseries.Missing()
		if countIdx < len(record) {
			count, err = parseCount(record[countIdx])
			if err != nil {
				return nil, fmt.Errorf("%s line %d: parse %q: %w", source, line, record[countIdx], err)
			}
		}
		rows = append(rows, listingRow{name: name, count: count})
	}
	return rows, nil
}

func (c *Client) fetchListing(ctx context.Context, path string) ([]listingRow, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch %s: %s", path, res.Status())
	}
	return parseListing(path, res.Body())
}
