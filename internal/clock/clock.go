package clock

import "time"

// Clock is the single source of "now" for every snapshot.
type Clock interface {
	Now() time.Time
}
