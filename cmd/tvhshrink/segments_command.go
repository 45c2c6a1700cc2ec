package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tvhshrink/internal/segments"
)

func newSegmentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "segments <report>",
		Short:       "Summarize a commercial detector report",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := segments.ReadReport(args[0])
			if err != nil {
				return err
			}
			set := segments.Analyze(lines)
			out := cmd.OutOrStdout()
			if set.Empty() {
				fmt.Fprintln(out, "No usable intervals in report; chaptering would be skipped")
				return nil
			}

			rows := make([][]string, 0, len(set.Content)+len(set.Commercials))
			for i, interval := range set.Content {
				rows = append(rows, segmentRow("content", i+1, interval, set.Rate))
			}
			for i, interval := range set.Commercials {
				rows = append(rows, segmentRow("commercial", i+1, interval, set.Rate))
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Kind", "#", "Start", "End", "Frames", "Seconds"},
				rows,
				2, 3, 4, 5, 6,
			))
			fmt.Fprintf(out, "Total: %d frames at rate %d (%.2f fps), %d commercial breaks\n",
				set.TotalFrames, set.Rate, float64(set.Rate)/100, len(set.Commercials))
			return nil
		},
	}
}

func segmentRow(kind string, index int, interval segments.Interval, rate int64) []string {
	return []string{
		kind,
		strconv.Itoa(index),
		strconv.FormatInt(interval.Start, 10),
		strconv.FormatInt(interval.End, 10),
		strconv.FormatInt(interval.Frames(), 10),
		fmt.Sprintf("%.2f", interval.Seconds(rate)),
	}
}
