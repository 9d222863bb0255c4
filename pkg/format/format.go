// Package format renders upstream values into the short strings shown in
// option titles and subtitles.
package format

import (
	"math"
	"strconv"
	"time"
)

var units = []struct {
	div    float64
	suffix string
}{
	{1e3, "K"},
	{1e6, "M"},
	{1e9, "B"},
	{1e12, "T"},
}

// Number abbreviates n with one decimal and a K, M, B or T suffix, rounding
// half away from zero and dropping a trailing ".0": 950 is "950", 12345 is
// "12.3K", 999999 is "1M". T is the largest unit.
func Number(n int) string {
	sign := ""
	v := float64(n)
	if v < 0 {
		sign = "-"
		v = -v
	}
	if v < units[0].div {
		return sign + strconv.FormatFloat(v, 'f', -1, 64)
	}

	i := 0
	for i < len(units)-1 && v >= units[i+1].div {
		i++
	}
	r := math.Round(v/units[i].div*10) / 10
	if r >= 1000 && i < len(units)-1 {
		i++
		r = math.Round(v/units[i].div*10) / 10
	}
	return sign + strconv.FormatFloat(r, 'f', -1, 64) + units[i].suffix
}

// Score renders a 0..1 fraction as a whole percentage.
func Score(f float64) string {
	p := math.Round(f * 100)
	if p == 0 {
		// Clears negative zero.
		p = 0
	}
	return strconv.FormatFloat(p, 'f', 0, 64) + "%"
}

// Compact drops zero values and keeps the order of the rest.
func Compact[T comparable](items ...T) []T {
	var zero T
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item != zero {
			out = append(out, item)
		}
	}
	return out
}

// Title joins a name and an optional description with an en dash.
func Title(name, description string) string {
	if description == "" {
		return name
	}
	return name + " – " + description
}

// ShortDate renders t as "5 Jan 21".
func ShortDate(t time.Time) string {
	return t.UTC().Format("2 Jan 06")
}

// LongDate renders t as "5 Jan 2021".
func LongDate(t time.Time) string {
	return t.UTC().Format("2 Jan 2006")
}

// DateTime renders t as "1/5/2021, 3:04 PM".
func DateTime(t time.Time) string {
	return t.UTC().Format("1/2/2006, 3:04 PM")
}

// Millis converts a Unix millisecond timestamp.
func Millis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
