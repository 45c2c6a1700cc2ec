package tvheadend

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tvhshrink/internal/services"
)

// Node classes returned by the registry that this client understands.
const (
	ClassDVREntry = "dvrentry"
	ClassChannel  = "channel"
)

// Recording is the typed descriptor for one finished DVR entry. Unknown
// registry parameters are ignored rather than bound dynamically.
type Recording struct {
	ID          string
	Path        string
	Title       string
	Subtitle    string
	Description string
	ChannelID   string
	Channel     string
	Start       time.Time
}

// NewRecording validates and extracts the DVR subset of a raw registry
// record. The record must carry the dvrentry class, a filename, and a title;
// everything else is optional.
func NewRecording(id string, record Record) (Recording, error) {
	if record.Class != ClassDVREntry {
		return Recording{}, services.Wrap(services.ErrValidation, "registry", "decode", fmt.Sprintf("node %s has class %q, want %q", id, record.Class, ClassDVREntry), nil)
	}
	path := strings.TrimSpace(record.Param("filename"))
	if path == "" {
		return Recording{}, services.Wrap(services.ErrValidation, "registry", "decode", fmt.Sprintf("node %s has no filename", id), nil)
	}
	title := strings.TrimSpace(record.Param("disp_title"))
	if title == "" {
		return Recording{}, services.Wrap(services.ErrValidation, "registry", "decode", fmt.Sprintf("node %s has no title", id), nil)
	}

	recording := Recording{
		ID:          id,
		Path:        path,
		Title:       title,
		Subtitle:    record.Param("disp_subtitle"),
		Description: record.Param("disp_description"),
		ChannelID:   strings.TrimSpace(record.Param("channel")),
	}
	if raw := strings.TrimSpace(record.Param("start")); raw != "" {
		if seconds, err := strconv.ParseInt(raw, 10, 64); err == nil {
			recording.Start = time.Unix(seconds, 0)
		}
	}
	return recording, nil
}

// ChannelName extracts the display name from a channel record.
func ChannelName(record Record) (string, error) {
	if record.Class != ClassChannel {
		return "", services.Wrap(services.ErrValidation, "registry", "decode", fmt.Sprintf("node has class %q, want %q", record.Class, ClassChannel), nil)
	}
	return record.Param("name"), nil
}

// LoadRecording fetches a DVR entry and resolves its channel display name
// with a second explicit lookup. Both lookups must succeed; a recording
// without a channel reference keeps an empty channel name.
func (c *Client) LoadRecording(ctx context.Context, id string) (Recording, error) {
	record, err := c.Lookup(ctx, id)
	if err != nil {
		return Recording{}, err
	}
	recording, err := NewRecording(id, record)
	if err != nil {
		return Recording{}, err
	}
	if recording.ChannelID != "" {
		channel, err := c.Lookup(ctx, recording.ChannelID)
		if err != nil {
			return Recording{}, err
		}
		name, err := ChannelName(channel)
		if err != nil {
			return Recording{}, err
		}
		recording.Channel = name
	}
	return recording, nil
}
