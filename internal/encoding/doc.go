// Package encoding computes target bitrates from probe output and drives the
// ffmpeg transcode that produces the final MP4.
package encoding
