package workflow

import (
	"tvhshrink/internal/encoding"
	"tvhshrink/internal/segments"
	"tvhshrink/internal/tvheadend"
)

// State identifies how far a pipeline run has progressed.
type State string

const (
	// StateLoaded means the recording and channel descriptors were fetched.
	StateLoaded State = "loaded"
	// StateDetected means the commercial detector exited cleanly.
	StateDetected State = "detected"
	// StateAnalyzed means segment analysis ran and the metadata file exists.
	StateAnalyzed State = "analyzed"
	// StateEstimated means the target bitrate was computed.
	StateEstimated State = "estimated"
	// StateEncoded means the transcode finished inside the workspace.
	StateEncoded State = "encoded"
	// StateRelocated means the transcode sits next to the source file.
	StateRelocated State = "relocated"
	// StateNotified means the registry acknowledged the file move.
	StateNotified State = "notified"
	// StateCleaned means the source transport stream was deleted.
	StateCleaned State = "cleaned"
	// StateFailed absorbs a run stopped by any error.
	StateFailed State = "failed"
)

// Run is the mutable state threaded through one pipeline invocation. It is
// owned by a single Process call and discarded at exit.
type Run struct {
	ID           string
	RunID        string
	Recording    tvheadend.Recording
	Segments     segments.Set
	MetadataPath string
	Target       encoding.Target
	EncodedPath  string
	FinalPath    string
	State        State
	History      []State
}

func (r *Run) setState(state State) {
	r.State = state
	r.History = append(r.History, state)
}
