package market

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/titanous/json5"
)

// PriceObservation is one hourly (or daily, for older history) sale summary.
type PriceObservation struct {
	Time  time.Time
	Price decimal.Decimal
	Sold  int64
}

// ParseError describes input that is not a list of
// [timestamp, price, quantity] triples.
type ParseError struct {
	// Index of the offending triple, -1 when the input as a whole is malformed.
	Index  int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Index >= 0 {
		msg = fmt.Sprintf("triple %d: %s", e.Index, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err.Error())
	}
	return "market: " + msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseTriples parses a bracketed list of price triples, ex.
//
//	[["Jan 01 2024 01: +0",2.5,"3"],["Jan 01 2024 02: +0",3.5,"1"]]
//
// The quantity may be a number or a numeric string.
func ParseTriples(text string) ([]PriceObservation, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		return nil, &ParseError{Index: -1, Reason: "expected a bracketed list"}
	}

	var raw []any
	err := json5.Unmarshal([]byte(text), &raw)
	if err != nil {
		return nil, &ParseError{Index: -1, Reason: "decode list", Err: err}
	}

	observations := make([]PriceObservation, len(raw))
	for i, entry := range raw {
		triple, ok := entry.([]any)
		if !ok || len(triple) != 3 {
			return nil, &ParseError{Index: i, Reason: "expected a list of 3 elements"}
		}

		timestamp, ok := triple[0].(string)
		if !ok {
			return nil, &ParseError{Index: i, Reason: "timestamp is not a string"}
		}
		t, err := ParseTimestamp(timestamp)
		if err != nil {
			return nil, &ParseError{Index: i, Reason: "timestamp", Err: err}
		}

		price, ok := triple[1].(float64)
		if !ok || price < 0 || math.IsInf(price, 0) || math.IsNaN(price) {
			return nil, &ParseError{Index: i, Reason: fmt.Sprintf("invalid price %v", triple[1])}
		}

		sold, err := parseQuantity(triple[2])
		if err != nil {
			return nil, &ParseError{Index: i, Reason: "quantity", Err: err}
		}

		observations[i] = PriceObservation{
			Time:  t,
			Price: decimal.NewFromFloat(price),
			Sold:  sold,
		}
	}
	return observations, nil
}

func parseQuantity(value any) (int64, error) {
	var n int64
	switch v := value.(type) {
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, err
		}
		n = parsed
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		// float64(math.MaxInt64) rounds up to 2^63
		if math.Abs(v) >= math.MaxInt64 {
			return 0, fmt.Errorf("%v is out of range", v)
		}
		n = int64(v)
	default:
		return 0, fmt.Errorf("unexpected %T", value)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative quantity %d", n)
	}
	return n, nil
}

var monthAbbreviations = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// "Jan 01 2024 01: +0" (market pages) and "Jan 1 2024 01:00"
var timestampRegex = regexp.MustCompile(`^([A-Za-z]{3}) +(\d{1,2}) +(\d{4}) +(\d{1,2}):(\d{2})?(?: *([+-]\d{1,2}))?$`)

// ParseTimestamp parses the month-abbreviation timestamps of price
// histories. The trailing offset is in hours, the result is in UTC.
func ParseTimestamp(text string) (time.Time, error) {
	groups := timestampRegex.FindStringSubmatch(strings.TrimSpace(text))
	if groups == nil {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", text)
	}

	month, ok := monthAbbreviations[strings.ToLower(groups[1])]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month %q", groups[1])
	}
	day, _ := strconv.Atoi(groups[2])
	year, _ := strconv.Atoi(groups[3])
	hour, _ := strconv.Atoi(groups[4])
	minute := 0
	if groups[5] != "" {
		minute, _ = strconv.Atoi(groups[5])
	}
	offset := 0
	if groups[6] != "" {
		offset, _ = strconv.Atoi(groups[6])
	}

	if hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("time of day out of range in %q", text)
	}
	t := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, fmt.Errorf("day out of range in %q", text)
	}
	return t.Add(-time.Duration(offset) * time.Hour), nil
}
