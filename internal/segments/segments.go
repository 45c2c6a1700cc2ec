// Package segments turns raw comskip frame reports into content and
// commercial intervals suitable for chapter embedding.
package segments

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// minBreakFrames is the noise floor: detector candidates spanning this many
// frames or fewer are discarded.
const minBreakFrames = 10

var (
	headerPattern   = regexp.MustCompile(`^FILE PROCESSING COMPLETE\s+(\d+) FRAMES AT\s+(\d+)`)
	intervalPattern = regexp.MustCompile(`^(\d+)\s+(\d+)`)
)

// Interval is a frame-indexed span with End > Start assumed.
type Interval struct {
	Start int64
	End   int64
}

// Frames returns the span length in frames.
func (i Interval) Frames() int64 {
	return i.End - i.Start
}

// Seconds converts the span length to seconds for the given detector rate.
// The rate is in hundredths of frames per second (comskip convention).
func (i Interval) Seconds(rate int64) float64 {
	if rate == 0 {
		return 0
	}
	return float64(i.Frames()) * 100 / float64(rate)
}

// Set holds the analyzed intervals of one recording. Commercials are the kept
// detector candidates in scan order; Content fills the gaps between and after
// them. Rate is the detector frame rate in hundredths of frames per second.
type Set struct {
	Commercials []Interval
	Content     []Interval
	TotalFrames int64
	Rate        int64
}

// Empty reports whether no interval of either kind was derived.
func (s Set) Empty() bool {
	return len(s.Commercials) == 0 && len(s.Content) == 0
}

// Analyze parses a detector report into a Set. Reports shorter than three
// lines or with an unrecognized header yield a zero Set rather than an error;
// chaptering is skipped for such recordings.
//
// Interval lines are scanned in order and trusted as-is: no sorting or
// overlap validation is applied, so non-monotonic detector output propagates
// into the result.
func Analyze(lines []string) Set {
	if len(lines) < 3 {
		return Set{}
	}
	header := headerPattern.FindStringSubmatch(lines[0])
	if header == nil {
		return Set{}
	}
	totalFrames, err := strconv.ParseInt(header[1], 10, 64)
	if err != nil {
		return Set{}
	}
	rate, err := strconv.ParseInt(header[2], 10, 64)
	if err != nil {
		return Set{}
	}

	set := Set{TotalFrames: totalFrames, Rate: rate}
	for _, line := range lines[2:] {
		match := intervalPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		start, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			continue
		}
		end, err := strconv.ParseInt(match[2], 10, 64)
		if err != nil {
			continue
		}
		if end-start <= minBreakFrames {
			continue
		}
		set.Commercials = append(set.Commercials, Interval{Start: start, End: end})
	}

	cursor := int64(1)
	for _, commercial := range set.Commercials {
		if commercial.Start > cursor {
			set.Content = append(set.Content, Interval{Start: cursor, End: commercial.Start})
		}
		cursor = commercial.End
	}
	if len(set.Commercials) > 0 && cursor < totalFrames {
		set.Content = append(set.Content, Interval{Start: cursor, End: totalFrames})
	}
	return set
}

// ReadReport loads a detector report file. Comskip writes Latin-1 text, so
// the bytes are decoded through ISO 8859-1 before splitting into lines.
func ReadReport(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read detector report: %w", err)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode detector report: %w", err)
	}
	lines := strings.Split(string(decoded), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}
