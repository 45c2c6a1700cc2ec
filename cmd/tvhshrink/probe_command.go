package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tvhshrink/internal/encoding"
	"tvhshrink/internal/ffprobe"
)

func newProbeCommand(cmdCtx *commandContext) *cobra.Command {
	var rawJSON bool

	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "Show the source bitrate and the computed encode target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			result, err := ffprobe.Inspect(cmd.Context(), cfg.Probe.Binary, args[0])
			if err != nil {
				return err
			}
			if rawJSON {
				_, err := cmd.OutOrStdout().Write(result.RawJSON())
				return err
			}
			bitrate := result.BitRate()
			if bitrate <= 0 {
				return fmt.Errorf("probe %s: container reports no bitrate", args[0])
			}
			target := encoding.AlignTarget(bitrate, cfg.Encoder.BitrateFactor)

			frameRate := "unknown"
			if stream, ok := result.VideoStream(); ok {
				if num, den, err := stream.FrameRate(); err == nil {
					frameRate = fmt.Sprintf("%.2f fps", float64(num)/float64(den))
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Property", "Value"},
				[][]string{
					{"Source bitrate", strconv.FormatInt(bitrate, 10) + " b/s"},
					{"Bitrate factor", strconv.FormatFloat(cfg.Encoder.BitrateFactor, 'f', -1, 64)},
					{"Encode target", strconv.FormatInt(int64(target), 10) + " b/s"},
					{"Frame rate", frameRate},
					{"Duration", fmt.Sprintf("%.1f s", result.DurationSeconds())},
				},
				2,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&rawJSON, "json", false, "Print the raw ffprobe payload instead of the summary table")
	return cmd
}
