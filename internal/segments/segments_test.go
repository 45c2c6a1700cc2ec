package segments_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tvhshrink/internal/segments"
)

const header = "FILE PROCESSING COMPLETE 1000 FRAMES AT 2500"

func report(intervals ...string) []string {
	lines := []string{header, "-------------------"}
	return append(lines, intervals...)
}

func TestAnalyzeDerivesContentAroundCommercials(t *testing.T) {
	set := segments.Analyze(report("100 130", "500 550"))

	wantCommercials := []segments.Interval{{Start: 100, End: 130}, {Start: 500, End: 550}}
	if !reflect.DeepEqual(set.Commercials, wantCommercials) {
		t.Fatalf("unexpected commercials: %+v", set.Commercials)
	}
	wantContent := []segments.Interval{{Start: 1, End: 100}, {Start: 130, End: 500}, {Start: 550, End: 1000}}
	if !reflect.DeepEqual(set.Content, wantContent) {
		t.Fatalf("unexpected content: %+v", set.Content)
	}
	if set.TotalFrames != 1000 || set.Rate != 2500 {
		t.Fatalf("unexpected totals: %d frames at %d", set.TotalFrames, set.Rate)
	}
}

func TestAnalyzeFiltersShortCandidates(t *testing.T) {
	set := segments.Analyze(report("100 105"))
	if len(set.Commercials) != 0 {
		t.Fatalf("expected short candidate to be dropped, got %+v", set.Commercials)
	}
	if !set.Empty() {
		t.Fatalf("expected empty set, got %+v", set)
	}

	// Eleven frames is the first span that survives the noise floor.
	set = segments.Analyze(report("100 110", "200 211"))
	want := []segments.Interval{{Start: 200, End: 211}}
	if !reflect.DeepEqual(set.Commercials, want) {
		t.Fatalf("unexpected commercials: %+v", set.Commercials)
	}
}

func TestAnalyzeReportWithoutBreaksIsEmpty(t *testing.T) {
	// A no-breaks report file still ends with a newline, so ReadReport
	// yields a trailing empty line after the separator.
	set := segments.Analyze(report(""))
	if !set.Empty() {
		t.Fatalf("expected empty set for break-free report, got %+v", set)
	}
	if set.TotalFrames != 1000 {
		t.Fatalf("expected frame total to be recorded, got %d", set.TotalFrames)
	}
}

func TestAnalyzeRejectsShortOrMalformedReports(t *testing.T) {
	if set := segments.Analyze([]string{header, "----"}); !set.Empty() || set.TotalFrames != 0 {
		t.Fatalf("expected zero set for two-line report, got %+v", set)
	}
	if set := segments.Analyze(nil); !set.Empty() {
		t.Fatalf("expected zero set for nil report, got %+v", set)
	}
	malformed := []string{"COMSKIP OUTPUT", "----", "100 130"}
	if set := segments.Analyze(malformed); !set.Empty() || set.TotalFrames != 0 {
		t.Fatalf("expected zero set for malformed header, got %+v", set)
	}
}

func TestAnalyzeCommercialAtEdges(t *testing.T) {
	set := segments.Analyze(report("1 200", "900 1000"))
	wantContent := []segments.Interval{{Start: 200, End: 900}}
	if !reflect.DeepEqual(set.Content, wantContent) {
		t.Fatalf("expected no leading or trailing content, got %+v", set.Content)
	}
}

func TestAnalyzeIgnoresTrailingJunkOnIntervalLines(t *testing.T) {
	set := segments.Analyze(report("100 130 extra columns"))
	want := []segments.Interval{{Start: 100, End: 130}}
	if !reflect.DeepEqual(set.Commercials, want) {
		t.Fatalf("unexpected commercials: %+v", set.Commercials)
	}
}

func TestIntervalSeconds(t *testing.T) {
	iv := segments.Interval{Start: 100, End: 350}
	if got := iv.Seconds(2500); got != 10 {
		t.Fatalf("expected 10s for 250 frames at 25fps, got %v", got)
	}
	if got := iv.Seconds(0); got != 0 {
		t.Fatalf("expected 0 for zero rate, got %v", got)
	}
}

func TestReadReportDecodesLatin1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.txt")
	// 0xE9 is é in ISO 8859-1 and invalid on its own in UTF-8.
	content := []byte("FILE PROCESSING COMPLETE 500 FRAMES AT 2500\r\ncaf\xe9 marker line\r\n100 130\r\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write report: %v", err)
	}

	lines, err := segments.ReadReport(path)
	if err != nil {
		t.Fatalf("ReadReport returned error: %v", err)
	}
	if len(lines) < 3 {
		t.Fatalf("unexpected line count: %d", len(lines))
	}
	if lines[1] != "café marker line" {
		t.Fatalf("expected decoded Latin-1 text, got %q", lines[1])
	}

	set := segments.Analyze(lines)
	want := []segments.Interval{{Start: 100, End: 130}}
	if !reflect.DeepEqual(set.Commercials, want) {
		t.Fatalf("unexpected commercials from decoded report: %+v", set.Commercials)
	}
}

func TestReadReportMissingFile(t *testing.T) {
	if _, err := segments.ReadReport(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing report")
	}
}
