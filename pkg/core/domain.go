// VersionTag is the central entity of the domain.
package core

import "fmt"

// VersionTag is a date-coded release identifier of the form vYY.M.D.N.
// Month, day and sequence carry no leading zeros; the sequence restarts
// at 1 on each calendar day.
type VersionTag struct {
	Year     int // two digits, e.g. 25
	Month    int // 1-12
	Day      int // 1-31
	Sequence int // >= 1, unique per day
}

// String renders the tag in its canonical form, e.g. "v25.8.30.2".
func (v VersionTag) String() string {
	return fmt.Sprintf("v%d.%d.%d.%d", v.Year, v.Month, v.Day, v.Sequence)
}

// Compare orders tags numerically by (year, month, day, sequence).
// String comparison is deliberately avoided: it misorders sequence 10
// before sequence 2.
func (v VersionTag) Compare(o VersionTag) int {
	pairs := [4][2]int{
		{v.Year, o.Year},
		{v.Month, o.Month},
		{v.Day, o.Day},
		{v.Sequence, o.Sequence},
	}
	for _, p := range pairs {
		if p[0] != p[1] {
			if p[0] < p[1] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// SameDay reports whether both tags belong to the same calendar day.
func (v VersionTag) SameDay(o VersionTag) bool {
	return v.Year == o.Year && v.Month == o.Month && v.Day == o.Day
}

// Reference points at a spot in repository history: a release tag or a
// raw commit. Used as a boundary when collecting changes.
type Reference struct {
	Name     string // tag name, or commit SHA when IsCommit
	IsCommit bool
}

// Short returns a display form of the reference, abbreviating commit SHAs.
func (r Reference) Short() string {
	if r.IsCommit && len(r.Name) > 7 {
		return r.Name[:7]
	}
	return r.Name
}

// ChangeRecord is one unit of history considered for the release notes:
// a merged pull request or a raw commit, depending on the source mode.
type ChangeRecord struct {
	ID     string // commit SHA or PR number
	Title  string
	Author string   // optional
	URL    string   // link to the change, optional
	Files  []string // touched paths; populated in commit mode only
}

// ShortID abbreviates commit SHAs for display. PR numbers pass through.
func (c ChangeRecord) ShortID() string {
	if len(c.ID) > 7 {
		return c.ID[:7]
	}
	return c.ID
}

// Release is the payload handed to a Publisher.
type Release struct {
	Tag        string
	Name       string
	Body       string
	Target     string // commitish the tag is created on, optional
	Draft      bool
	Prerelease bool
}

// PublishResult reports the outcome of a successful publish.
type PublishResult struct {
	URL string // browser URL of the created release
}
