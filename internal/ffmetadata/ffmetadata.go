// Package ffmetadata renders ffmpeg metadata files: a descriptive tag header
// followed by chapter blocks for content and commercial segments.
package ffmetadata

import (
	"fmt"
	"strings"
	"time"

	"tvhshrink/internal/segments"
)

// Tags holds the descriptive fields embedded in the output container.
// Values are rendered verbatim; the ffmetadata escaping rules for '=', ';',
// '#', and backslash are not applied.
type Tags struct {
	Title       string
	Artist      string
	Description string
	Date        time.Time
	Network     string
}

// Chapters renders one [CHAPTER] block per interval, indexed from 1, with a
// tick base of 100/rate seconds and frame values as ticks. The result is
// byte-stable for identical input.
func Chapters(rate int64, label string, intervals []segments.Interval) string {
	var b strings.Builder
	for i, interval := range intervals {
		fmt.Fprintf(&b, "[CHAPTER]\nTIMEBASE=100/%d\nSTART=%d\nEND=%d\ntitle=%s %d\n", rate, interval.Start, interval.End, label, i+1)
	}
	return b.String()
}

// ForSet renders the full chapter text for a segment set: content chapters
// first, then commercial chapters, each group in detection order. Across
// groups the blocks are not chronological.
func ForSet(set segments.Set) string {
	return Chapters(set.Rate, "content", set.Content) + Chapters(set.Rate, "commercial", set.Commercials)
}

// Compose renders the ;FFMETADATA1 header with the fixed tag order, followed
// immediately by the supplied chapter text. A zero Date drops the date line.
func Compose(tags Tags, chapterText string) string {
	var b strings.Builder
	b.WriteString(";FFMETADATA1\n")
	fmt.Fprintf(&b, "title=%s\n", tags.Title)
	fmt.Fprintf(&b, "artist=%s\n", tags.Artist)
	fmt.Fprintf(&b, "description=%s\n", tags.Description)
	if !tags.Date.IsZero() {
		fmt.Fprintf(&b, "date=%s\n", tags.Date.Local().Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "network=%s\n", tags.Network)
	b.WriteString(chapterText)
	return b.String()
}
