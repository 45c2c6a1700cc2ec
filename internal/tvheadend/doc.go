// Package tvheadend is the client for the TVHeadend HTTP registry: raw node
// lookups, the typed recording descriptor built from them, and the
// file-moved notification that authorizes source deletion.
package tvheadend
