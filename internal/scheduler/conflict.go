// Package scheduler reports how a proposed booking window relates to the
// bookings already recorded for a room. Reports are informational; nothing in
// this package rejects a booking.
package scheduler

import (
	"sort"
	"time"
)

// Window is a booked interval of a room. End is exclusive.
type Window struct {
	ID     uint
	RoomID uint
	Start  time.Time
	End    time.Time
}

// Inverted reports whether the window ends before or at its start.
func (w Window) Inverted() bool {
	return !w.End.After(w.Start)
}

// Overlaps reports whether both windows share at least one instant. Windows
// that only touch at a boundary do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// ConflictType describes the type of conflict detected for a window.
type ConflictType string

const (
	// ConflictTypeRoom indicates the room is already booked during part of the window.
	ConflictTypeRoom ConflictType = "room"
	// ConflictTypeInvertedWindow indicates the window does not end after it starts.
	ConflictTypeInvertedWindow ConflictType = "inverted_window"
)

// Conflict details a relation callers can present to users.
type Conflict struct {
	Type ConflictType
	// WithWindowID is the existing booking involved; zero for inverted windows.
	WithWindowID uint
	RoomID       uint
	Start        time.Time
	End          time.Time
}

// DetectConflicts identifies conflicts for the candidate window against
// existing ones. Windows of other rooms and the candidate itself (same non-zero
// ID) are ignored. Room conflicts are ordered by start then ID.
func DetectConflicts(existing []Window, candidate Window) []Conflict {
	var conflicts []Conflict

	if candidate.Inverted() {
		conflicts = append(conflicts, Conflict{
			Type:   ConflictTypeInvertedWindow,
			RoomID: candidate.RoomID,
			Start:  candidate.Start,
			End:    candidate.End,
		})
	}

	overlapping := make([]Window, 0, len(existing))
	for _, w := range existing {
		if w.RoomID != candidate.RoomID {
			continue
		}
		if candidate.ID != 0 && w.ID == candidate.ID {
			continue
		}
		if w.Overlaps(candidate) {
			overlapping = append(overlapping, w)
		}
	}

	sort.SliceStable(overlapping, func(i, j int) bool {
		if !overlapping[i].Start.Equal(overlapping[j].Start) {
			return overlapping[i].Start.Before(overlapping[j].Start)
		}
		return overlapping[i].ID < overlapping[j].ID
	})

	for _, w := range overlapping {
		conflicts = append(conflicts, Conflict{
			Type:         ConflictTypeRoom,
			WithWindowID: w.ID,
			RoomID:       w.RoomID,
			Start:        w.Start,
			End:          w.End,
		})
	}

	return conflicts
}
