package reql

import (
	"encoding/json"
	"errors"
	stdtime "time"
)

// Time family - kept from teacher's query_time.go, which already
// implements this surface against the old protocol; re-pointed at the new
// term tags. Not named in spec.md's non-exhaustive table, not excluded by
// any Non-goal, and already real code worth carrying forward rather than
// discarding.

// timeDatum is the $reql_type$ pseudo-type encoding the wire protocol uses
// for a literal time value, adapted from the teacher pack's standalone
// time.Time wrapper (time/time.go) - that package predates the term-tree
// builder and only ever carried this one MarshalJSON method, so it's folded
// in here instead of kept as its own unwired package.
type timeDatum struct {
	t stdtime.Time
}

func (d timeDatum) MarshalJSON() ([]byte, error) {
	if y := d.t.Year(); y < 0 || y >= 10000 {
		return nil, errors.New("reql: time value year outside of range [0,9999]")
	}
	return json.Marshal(map[string]any{
		"$reql_type$": "TIME",
		"epoch_time":  float64(d.t.UnixNano()) / 1e9,
		"timezone":    "+00:00",
	})
}

// TimeVal lifts a Go time.Time into a literal time-category expression -
// the datum counterpart to Now/ISO8601/EpochTime below, for embedding a
// fixed instant directly into a query (e.g. a Between bound) without a
// round trip through ISO8601 or EpochTime.
func TimeVal(t stdtime.Time) Expr[Any] { return exprOf[Any](timeDatum{t: t.UTC()}) }

// Now returns the server's current time.
func Now() Expr[Any] { return exprOf[Any](newTerm(tagNow)) }

// ISO8601 parses an ISO-8601 string into a time value.
func ISO8601(s Expr[String]) Expr[Any] { return exprOf[Any](newTerm(tagISO8601, astOf(s))) }

// ToISO8601 formats a time value as an ISO-8601 string.
func ToISO8601(t Expr[Any]) Expr[String] { return exprOf[String](newTerm(tagToISO8601, astOf(t))) }

// EpochTime builds a time value from a Unix timestamp.
func EpochTime(seconds Expr[Number]) Expr[Any] {
	return exprOf[Any](newTerm(tagEpochTime, astOf(seconds)))
}

// ToEpochTime converts a time value to a Unix timestamp.
func ToEpochTime(t Expr[Any]) Expr[Number] {
	return exprOf[Number](newTerm(tagToEpochTime, astOf(t)))
}

// InTimezone returns t shifted into the named UTC-offset timezone
// ("+05:30" style).
func InTimezone(t Expr[Any], tz Expr[String]) Expr[Any] {
	return exprOf[Any](newTerm(tagInTimezone, astOf(t), astOf(tz)))
}

// During reports whether t falls in [start, end).
func During(t, start, end Expr[Any]) Expr[Bool] {
	return exprOf[Bool](newTerm(tagDuring, astOf(t), astOf(start), astOf(end)))
}

// Date truncates a time value to midnight in its own timezone.
func Date(t Expr[Any]) Expr[Any] { return exprOf[Any](newTerm(tagDate, astOf(t))) }

// TimeOfDay returns the seconds elapsed since midnight for t.
func TimeOfDay(t Expr[Any]) Expr[Number] { return exprOf[Number](newTerm(tagTimeOfDay, astOf(t))) }

// Year / Month / Day / DayOfWeek / DayOfYear / Hours / Minutes / Seconds
// extract the corresponding field of a time value.
func Year(t Expr[Any]) Expr[Number]      { return exprOf[Number](newTerm(tagYear, astOf(t))) }
func Month(t Expr[Any]) Expr[Number]     { return exprOf[Number](newTerm(tagMonth, astOf(t))) }
func Day(t Expr[Any]) Expr[Number]       { return exprOf[Number](newTerm(tagDay, astOf(t))) }
func DayOfWeek(t Expr[Any]) Expr[Number] { return exprOf[Number](newTerm(tagDayOfWeek, astOf(t))) }
func DayOfYear(t Expr[Any]) Expr[Number] { return exprOf[Number](newTerm(tagDayOfYear, astOf(t))) }
func Hours(t Expr[Any]) Expr[Number]     { return exprOf[Number](newTerm(tagHours, astOf(t))) }
func Minutes(t Expr[Any]) Expr[Number]   { return exprOf[Number](newTerm(tagMinutes, astOf(t))) }
func Seconds(t Expr[Any]) Expr[Number]   { return exprOf[Number](newTerm(tagSeconds, astOf(t))) }
