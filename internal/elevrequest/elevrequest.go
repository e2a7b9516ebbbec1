package elevrequest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dinaMadelen/elevator-dispatch/internal/elevconsts"
)

var ErrInvalidRequest = errors.New("invalid request")

type Kind int

const (
	External Kind = iota // hall call, origin + direction
	Internal             // cab selection, origin + destination
)

func (k Kind) String() string {
	switch k {
	case External:
		return "External"
	case Internal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Request is one of the two request variants, tagged by Kind. Destination is
// only meaningful for Internal requests. Requests are passed by value and
// never modified after construction.
type Request struct {
	Kind        Kind                 `json:"kind"`
	Origin      int                  `json:"origin"`
	Destination int                  `json:"destination"`
	Dir         elevconsts.Direction `json:"direction"`
}

func NewExternal(origin int, dir elevconsts.Direction) Request {
	return Request{
		Kind:   External,
		Origin: origin,
		Dir:    dir,
	}
}

func NewInternal(origin int, destination int) Request {
	dir := elevconsts.Down
	if destination > origin {
		dir = elevconsts.Up
	}
	return Request{
		Kind:        Internal,
		Origin:      origin,
		Destination: destination,
		Dir:         dir,
	}
}

func (r Request) Direction() elevconsts.Direction {
	return r.Dir
}

// RequestedFloor is the floor a car has to reach to serve the request: the
// destination of a cab selection, or the floor a hall call came from.
func (r Request) RequestedFloor() int {
	switch r.Kind {
	case Internal:
		return r.Destination
	default:
		return r.Origin
	}
}

// Validate rejects requests whose requested floor lies outside [0, floorCount].
func (r Request) Validate(floorCount int) error {
	floor := r.RequestedFloor()
	if floor > floorCount {
		return fmt.Errorf("%w: building isn't tall enough for floor %d (top floor is %d)", ErrInvalidRequest, floor, floorCount)
	}
	if floor < 0 {
		return fmt.Errorf("%w: floor %d is below the ground floor", ErrInvalidRequest, floor)
	}
	return nil
}

func (r Request) String() string {
	switch r.Kind {
	case Internal:
		return fmt.Sprintf("Internal(%d -> %d, %s)", r.Origin, r.Destination, r.Dir)
	default:
		return fmt.Sprintf("External(%d, %s)", r.Origin, r.Dir)
	}
}

// Parse reads a request written as "ext:<floor>:<up|down>" or
// "int:<origin>:<destination>".
func Parse(input string) (Request, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(input)), ":")
	if len(parts) != 3 {
		return Request{}, fmt.Errorf("%w: %q is not ext:<floor>:<dir> or int:<origin>:<destination>", ErrInvalidRequest, input)
	}

	origin, err := strconv.Atoi(parts[1])
	if err != nil {
		return Request{}, fmt.Errorf("%w: bad floor in %q: %v", ErrInvalidRequest, input, err)
	}

	switch parts[0] {
	case "ext", "external":
		switch parts[2] {
		case "up":
			return NewExternal(origin, elevconsts.Up), nil
		case "down":
			return NewExternal(origin, elevconsts.Down), nil
		}
		return Request{}, fmt.Errorf("%w: bad direction in %q", ErrInvalidRequest, input)
	case "int", "internal":
		destination, err := strconv.Atoi(parts[2])
		if err != nil {
			return Request{}, fmt.Errorf("%w: bad destination in %q: %v", ErrInvalidRequest, input, err)
		}
		return NewInternal(origin, destination), nil
	}
	return Request{}, fmt.Errorf("%w: unknown request kind in %q", ErrInvalidRequest, input)
}
