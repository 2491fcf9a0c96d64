// Package media describes playable media as seen by the tracer and
// provides simulated player driven by the caller.
package media

import "fmt"

// EventKind is a media lifecycle or position notification.
type EventKind int

const (
	Play EventKind = iota
	Pause
	Ended
	TimeUpdate
)

func (k EventKind) String() string {
	switch k {
	case Play:
		return "play"
	case Pause:
		return "pause"
	case Ended:
		return "ended"
	case TimeUpdate:
		return "timeupdate"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Listener receives notifications of the media it subscribed to.
type Listener func(h Handle)

// Handle is a media source with positional timeline.
type Handle interface {
	// Sources returns every source identifier of the media.
	Sources() []string
	// Position returns current playback position in seconds.
	Position() float64
	Seek(seconds float64)
	Pause()
	// Subscribe registers listener for notifications of the kind, returned
	// function removes it.
	Subscribe(kind EventKind, l Listener) (cancel func())
}
