package elevevent

import (
	"fmt"
	"time"
)

// IdleEvent is sent by a car once it has stayed idle for the idle timeout.
type IdleEvent struct {
	Car   string
	Floor int
	At    time.Time
}

func (ie IdleEvent) String() string {
	return fmt.Sprintf("IdleEvent(%s at floor %d)", ie.Car, ie.Floor)
}
