package elevconsts

import "time"

const (
	DEFAULT_FLOOR_COUNT       = 10
	DEFAULT_TOP_REST_FLOOR    = 7
	DEFAULT_BOTTOM_REST_FLOOR = 0
	DEFAULT_IDLE_REST_FLOOR   = 0 //where idle cars are sent once the idle timer fires
	DEFAULT_TRAVEL_DELAY      = 5000 * time.Millisecond
	DEFAULT_IDLE_TIMEOUT      = 10000 * time.Millisecond

	TOP_CAR_NAME    = "Top elevator"
	BOTTOM_CAR_NAME = "Bottom elevator"
)

type Direction int

const (
	Down Direction = -1
	Up   Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	default:
		return "Undefined"
	}
}

func (d Direction) Opposite() Direction {
	if d == Up {
		return Down
	}
	return Up
}

type Status int

const (
	Idle Status = iota // 0
	GoingUp
	GoingDown
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "Idle"
	case GoingUp:
		return "GoingUp"
	case GoingDown:
		return "GoingDown"
	default:
		return "Undefined"
	}
}

// StatusFor is the moving status of a car servicing requests in direction d.
func StatusFor(d Direction) Status {
	if d == Up {
		return GoingUp
	}
	return GoingDown
}
