package market

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		text     string
		expected time.Time
	}{
		{text: "Jan 1 2024 01:00", expected: time.Date(2024, time.January, 1, 1, 0, 0, 0, time.UTC)},
		{text: "Jan 01 2024 01: +0", expected: time.Date(2024, time.January, 1, 1, 0, 0, 0, time.UTC)},
		{text: "Dec 31 2023 23: +0", expected: time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC)},
		{text: "feb 29 2024 12:30", expected: time.Date(2024, time.February, 29, 12, 30, 0, 0, time.UTC)},
		{text: "Mar 05 2024 02: +2", expected: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{text: "  Jul 14 2014 01: +0 ", expected: time.Date(2014, time.July, 14, 1, 0, 0, 0, time.UTC)},
	}
	for _, test := range cases {
		parsed, err := ParseTimestamp(test.text)
		if err != nil {
			t.Fatal(test.text, err)
		}
		require.Equal(t, test.expected, parsed, test.text)
	}

	for _, text := range []string{
		"",
		"2024-01-01",
		"Foo 01 2024 01: +0",
		"Feb 30 2023 01: +0",
		"Jan 01 2024 25: +0",
		"Jan 01 2024 01:75",
		"January 01 2024 01: +0",
	} {
		_, err := ParseTimestamp(text)
		require.Error(t, err, text)
	}
}

func TestParseTriples(t *testing.T) {
	observations, err := ParseTriples(`[["Jan 01 2024 01: +0",2.5,"3"],["Jan 01 2024 02: +0",3.5,1],]`)
	if err != nil {
		t.Fatal(err)
	}

	require.Len(t, observations, 2)
	require.Equal(t, time.Date(2024, time.January, 1, 1, 0, 0, 0, time.UTC), observations[0].Time)
	require.True(t, decimal.RequireFromString("2.5").Equal(observations[0].Price))
	require.Equal(t, int64(3), observations[0].Sold)
	require.True(t, decimal.RequireFromString("3.5").Equal(observations[1].Price))
	require.Equal(t, int64(1), observations[1].Sold)

	empty, err := ParseTriples("[]")
	if err != nil {
		t.Fatal(err)
	}
	require.Empty(t, empty)
}

func TestParseTriplesRejectsMalformed(t *testing.T) {
	cases := []struct {
		text  string
		index int
	}{
		{text: `alert("hi")`, index: -1},
		{text: `[["Jan 01 2024 01: +0",2.5,"3"]`, index: -1},
		{text: `[["Jan 01 2024 01: +0",2.5`, index: -1},
		{text: `[["Jan 01 2024 01: +0",2.5,"3"], ["Jan 01 2024 02: +0", 1]]`, index: 1},
		{text: `[["Jan 01 2024 01: +0","2.5","3"]]`, index: 0},
		{text: `[["Jan 01 2024 01: +0",-1,"3"]]`, index: 0},
		{text: `[["yesterday",2.5,"3"]]`, index: 0},
		{text: `[[20240101,2.5,"3"]]`, index: 0},
		{text: `[["Jan 01 2024 01: +0",2.5,"three"]]`, index: 0},
		{text: `[["Jan 01 2024 01: +0",2.5,1.5]]`, index: 0},
		{text: `[["Jan 01 2024 01: +0",2.5,"-4"]]`, index: 0},
		{text: `[["Jan 01 2024 01: +0",2.5,9223372036854775808]]`, index: 0},
		{text: `[["Jan 01 2024 01: +0",2.5,1e19]]`, index: 0},
		{text: `[{"a": 1}]`, index: 0},
	}

	for _, test := range cases {
		_, err := ParseTriples(test.text)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected a ParseError for %s, got %v", test.text, err)
		}
		require.Equal(t, test.index, parseErr.Index, test.text)
	}
}

func TestParseQuantity(t *testing.T) {
	n, err := parseQuantity(float64(1 << 62))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, int64(1<<62), n)

	_, err = parseQuantity(float64(math.MaxInt64))
	require.ErrorContains(t, err, "out of range")

	_, err = parseQuantity(-float64(math.MaxInt64))
	require.ErrorContains(t, err, "out of range")

	n, err = parseQuantity(" 12 ")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, int64(12), n)
}
