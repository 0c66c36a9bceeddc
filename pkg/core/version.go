package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ParseVersion parses a canonical date-coded tag name such as "v25.8.30.2".
// The returned error is a *MalformedTagError describing the first field
// that fails to parse.
func ParseVersion(name string) (VersionTag, error) {
	raw, ok := strings.CutPrefix(name, "v")
	if !ok {
		return VersionTag{}, &MalformedTagError{Tag: name, Reason: "missing v prefix"}
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 4 {
		return VersionTag{}, &MalformedTagError{Tag: name, Reason: "want four dot-separated fields"}
	}

	nums := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return VersionTag{}, &MalformedTagError{Tag: name, Reason: "non-numeric field " + strconv.Quote(p)}
		}
		nums[i] = n
	}

	v := VersionTag{Year: nums[0], Month: nums[1], Day: nums[2], Sequence: nums[3]}
	switch {
	case v.Month < 1 || v.Month > 12:
		return VersionTag{}, &MalformedTagError{Tag: name, Reason: "month out of range"}
	case v.Day < 1 || v.Day > 31:
		return VersionTag{}, &MalformedTagError{Tag: name, Reason: "day out of range"}
	case v.Sequence < 1:
		return VersionTag{}, &MalformedTagError{Tag: name, Reason: "sequence must be positive"}
	}
	return v, nil
}

// looksVersioned reports whether a tag name is plausibly in the version
// scheme: "v" followed by a digit. Tags outside the scheme (branches of
// another naming convention, annotated markers) are none of our business
// and are skipped without a warning.
func looksVersioned(name string) bool {
	rest, ok := strings.CutPrefix(name, "v")
	if !ok || rest == "" {
		return false
	}
	return unicode.IsDigit(rune(rest[0]))
}

// ScanTags parses every tag name that looks like a version tag. Names
// outside the scheme are ignored; names inside the scheme that fail to
// parse are returned as malformed so the caller can warn and move on.
func ScanTags(names []string) ([]VersionTag, []*MalformedTagError) {
	var (
		tags      []VersionTag
		malformed []*MalformedTagError
	)
	for _, name := range names {
		if !looksVersioned(name) {
			continue
		}
		v, err := ParseVersion(name)
		if err != nil {
			var mt *MalformedTagError
			if errors.As(err, &mt) {
				malformed = append(malformed, mt)
			}
			continue
		}
		tags = append(tags, v)
	}
	return tags, malformed
}

// NextVersion computes the tag for a new release on the given day: the
// highest existing same-day sequence plus one, or 1 when the day has no
// releases yet. Comparison is numeric on the parsed sequence field.
func NextVersion(existing []VersionTag, today time.Time) VersionTag {
	next := VersionTag{
		Year:     today.Year() % 100,
		Month:    int(today.Month()),
		Day:      today.Day(),
		Sequence: 1,
	}
	for _, v := range existing {
		if v.SameDay(next) && v.Sequence >= next.Sequence {
			next.Sequence = v.Sequence + 1
		}
	}
	return next
}

// PriorVersion returns the most recent tag strictly older than next, by
// the numeric total order. The second result is false when no prior
// release exists.
func PriorVersion(tags []VersionTag, next VersionTag) (VersionTag, bool) {
	var (
		prior VersionTag
		found bool
	)
	for _, v := range tags {
		if v.Compare(next) >= 0 {
			continue
		}
		if !found || v.Compare(prior) > 0 {
			prior = v
			found = true
		}
	}
	return prior, found
}
