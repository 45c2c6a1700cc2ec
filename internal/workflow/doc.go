// Package workflow sequences the post-processing run for a finished
// recording: load the registry entry, detect commercials, compose chapter
// metadata, estimate and run the encode, move the result next to the source,
// report the move to the registry, and finally remove the original file.
package workflow
