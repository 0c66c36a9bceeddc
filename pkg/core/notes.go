package core

import (
	"fmt"
	"strings"
)

// ReleaseNotes bundles everything the renderer needs: the computed
// version, the classified entries in discovery order, and an optional
// comparison link back to the previous release.
type ReleaseNotes struct {
	Version    VersionTag
	Entries    map[Category][]ChangeRecord
	CompareURL string // empty when there is no previous release
}

// MaxBodyLength is the release body size accepted by the GitHub API.
const MaxBodyLength = 125000

const truncationNotice = "_Some sections were omitted to keep the release body within size limits._"

// section groups one or more categories under a display heading. CI and
// CD are distinct prefixes but share a section.
type section struct {
	heading    string
	categories []Category
}

// Display order is fixed so repeated renders of the same entries are
// byte-identical, whatever order the records were discovered in.
var sections = []section{
	{"🚀 Features", []Category{CategoryFeat}},
	{"🐛 Fixes", []Category{CategoryFix}},
	{"📚 Docs", []Category{CategoryDocs}},
	{"🧪 Tests", []Category{CategoryTest}},
	{"🔄 CI/CD", []Category{CategoryCI, CategoryCD}},
	{"📦 Tasks", []Category{CategoryTask}},
	{"🧹 Chores", []Category{CategoryChore}},
	{"🔖 Other", []Category{CategoryOther}},
}

// RenderNotes assembles the Markdown release body: a version header, one
// block per non-empty section in fixed order, and a comparison trailer.
// When the body would exceed maxLen, whole sections are dropped from the
// lowest-priority end and a truncation notice is appended.
func RenderNotes(n ReleaseNotes) string {
	return renderNotes(n, MaxBodyLength)
}

func renderNotes(n ReleaseNotes, maxLen int) string {
	header := "## " + n.Version.String() + "\n"

	trailer := "**Full Changelog:** no previous version to compare against"
	if n.CompareURL != "" {
		trailer = "**Full Changelog:** " + n.CompareURL
	}

	var blocks []string
	for _, sec := range sections {
		var b strings.Builder
		for _, cat := range sec.categories {
			for _, rec := range n.Entries[cat] {
				b.WriteString(renderEntry(rec))
			}
		}
		if b.Len() == 0 {
			continue
		}
		blocks = append(blocks, "### "+sec.heading+"\n"+b.String())
	}

	assemble := func(blocks []string, notice bool) string {
		var b strings.Builder
		b.WriteString(header)
		for _, blk := range blocks {
			b.WriteString("\n")
			b.WriteString(blk)
		}
		b.WriteString("\n")
		b.WriteString(trailer)
		b.WriteString("\n")
		if notice {
			b.WriteString(truncationNotice)
			b.WriteString("\n")
		}
		return b.String()
	}

	body := assemble(blocks, false)
	if len(body) <= maxLen {
		return body
	}

	// Drop whole sections from the tail (lowest priority first) until the
	// body fits alongside the notice.
	for len(blocks) > 0 {
		blocks = blocks[:len(blocks)-1]
		body = assemble(blocks, true)
		if len(body) <= maxLen {
			return body
		}
	}
	return assemble(nil, true)
}

func renderEntry(rec ChangeRecord) string {
	title := CleanTitle(rec.Title)

	var b strings.Builder
	if rec.URL != "" {
		fmt.Fprintf(&b, "- [%s](%s): %s", rec.ShortID(), rec.URL, title)
	} else {
		fmt.Fprintf(&b, "- %s: %s", rec.ShortID(), title)
	}
	if rec.Author != "" {
		fmt.Fprintf(&b, " (@%s)", rec.Author)
	}
	b.WriteString("\n")
	return b.String()
}
