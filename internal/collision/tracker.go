// Package collision tracks channel-name to hash-ID assignments for the
// registry, detecting the case where two distinct channel names hash to
// the same 64-bit ID.
package collision

import (
	"github.com/nimo-project/nimo/errs"
)

// Tracker tracks channel names and detects hash collisions during
// registration. It maintains a map of hash-to-name mappings and an ordered
// list of names for diagnostic reporting when collisions are detected.
type Tracker struct {
	channelNames     map[uint64]string // hash -> name, for collision detection
	channelNamesList []string          // ordered list, in registration order
	hasCollision     bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		channelNames:     make(map[uint64]string),
		channelNamesList: make([]string, 0),
	}
}

// TrackID tracks a channel hash supplied directly by the caller, without a
// known name. Returns ErrHashCollision if the hash was already used — this
// collision cannot be resolved automatically since no name is available to
// disambiguate.
func (t *Tracker) TrackID(hash uint64) error {
	if _, exists := t.channelNames[hash]; exists {
		return errs.ErrHashCollision
	}

	t.channelNames[hash] = ""

	return nil
}

// TrackChannel registers a channel name together with its hash. Returns
// ErrInvalidChannelName for an empty name, and ErrChannelAlreadyRegistered
// if the same name was registered before.
//
// A hash collision between two distinct names is not itself an error: it
// sets the collision flag so the registry can fall back to carrying full
// names over the wire instead of bare hashes.
func (t *Tracker) TrackChannel(name string, hash uint64) error {
	if name == "" {
		return errs.ErrInvalidChannelName
	}

	if existingName, exists := t.channelNames[hash]; exists {
		if existingName == name {
			return errs.ErrChannelAlreadyRegistered
		}
		t.hasCollision = true
	}

	t.channelNames[hash] = name
	t.channelNamesList = append(t.channelNamesList, name)

	return nil
}

// HasCollision reports whether any hash collision has been detected.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// ChannelNames returns the ordered list of registered channel names, in the
// order TrackChannel was called.
func (t *Tracker) ChannelNames() []string {
	return t.channelNamesList
}

// Count returns the number of tracked channels.
func (t *Tracker) Count() int {
	return len(t.channelNamesList)
}

// Reset clears all tracked channels and collision state, allowing the
// tracker to be reused.
func (t *Tracker) Reset() {
	for k := range t.channelNames {
		delete(t.channelNames, k)
	}
	t.channelNamesList = t.channelNamesList[:0]
	t.hasCollision = false
}
