package elevcar

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dinaMadelen/elevator-dispatch/internal/elevconsts"
	"github.com/dinaMadelen/elevator-dispatch/internal/elevevent"
	"github.com/dinaMadelen/elevator-dispatch/internal/elevrequest"
	"github.com/dinaMadelen/elevator-dispatch/internal/logger"
)

var Log = logger.GetLogger()

// Snapshot is the state a car publishes after every change. Readers never
// see a partially updated car.
type Snapshot struct {
	Name             string            `json:"name"`
	Status           elevconsts.Status `json:"status"`
	CurrentFloor     int               `json:"current_floor"`
	DestinationFloor int               `json:"destination_floor"` //only meaningful while not Idle
}

// EffectiveFloor is where the car will be once its committed stop is done.
func (s Snapshot) EffectiveFloor() int {
	if s.Status == elevconsts.Idle {
		return s.CurrentFloor
	}
	return s.DestinationFloor
}

// Car is one elevator and its dispatcher. Floors and status are only written
// by the goroutine running Run; everything else goes through the mailbox or
// the published snapshot.
type Car struct {
	name        string
	travelDelay time.Duration
	idleTimeout time.Duration

	//owned by the dispatch loop
	currentFloor     int
	destinationFloor int
	status           elevconsts.Status

	mailbox    *mailbox
	snapshot   atomic.Pointer[Snapshot]
	idleEvents chan<- elevevent.IdleEvent
	running    atomic.Bool

	//test hooks, called from the dispatch loop
	onPublish func(Snapshot)
	onIdleArm func()
}

func NewCar(name string, restFloor int, travelDelay time.Duration, idleTimeout time.Duration, idleEvents chan<- elevevent.IdleEvent) *Car {
	car := &Car{
		name:             name,
		travelDelay:      travelDelay,
		idleTimeout:      idleTimeout,
		currentFloor:     restFloor,
		destinationFloor: restFloor,
		status:           elevconsts.Idle,
		mailbox:          newMailbox(),
		idleEvents:       idleEvents,
	}
	car.publish()
	return car
}

func (c *Car) Name() string {
	return c.name
}

func (c *Car) Snapshot() Snapshot {
	return *c.snapshot.Load()
}

// Enqueue appends a request to the queue matching its direction. Safe to
// call from any goroutine.
func (c *Car) Enqueue(request elevrequest.Request) {
	c.mailbox.push(request)
	Log.Debug().Str("car", c.name).Msgf("Queued %v", request)
}

func (c *Car) Pending(dir elevconsts.Direction) []elevrequest.Request {
	return c.mailbox.items(dir)
}

func (c *Car) PendingCount(dir elevconsts.Direction) int {
	return c.mailbox.count(dir)
}

// WaitIdle blocks until the car has nothing queued and no stop in progress.
func (c *Car) WaitIdle(ctx context.Context) error {
	select {
	case <-c.mailbox.drainedSignal():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start runs the dispatch loop in its own goroutine.
func (c *Car) Start(ctx context.Context, waitGroup *sync.WaitGroup) {
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		c.Run(ctx)
	}()
}

// Run services the car's queues until ctx is cancelled.
func (c *Car) Run(ctx context.Context) {
	if !c.running.CompareAndSwap(false, true) {
		Log.Error().Str("car", c.name).Msg("Dispatch loop already running")
		return
	}
	defer c.running.Store(false)

	var idleTimer *time.Timer
	var idleTimeout <-chan time.Time
	idleConsumed := false

	stopIdleTimer := func() {
		if idleTimer != nil {
			idleTimer.Stop()
		}
		idleTimer = nil
		idleTimeout = nil
	}
	defer stopIdleTimer()

	for {
		if !c.mailbox.empty() {
			stopIdleTimer()
			idleConsumed = false

			Log.Info().Str("car", c.name).Msg("Processing requests...")
			if !c.processRequests(ctx) {
				Log.Warn().Str("car", c.name).Msg("Dispatch loop has been signaled to stop")
				return
			}
			continue
		}

		c.setIdle()
		if !c.mailbox.park() {
			continue
		}

		if !idleConsumed {
			if idleTimeout == nil {
				Log.Info().Str("car", c.name).Msgf("Processed all requests, starting idle timer (%v)", c.idleTimeout)
				idleTimer = time.NewTimer(c.idleTimeout)
				idleTimeout = idleTimer.C
				if c.onIdleArm != nil {
					c.onIdleArm()
				}
			} else {
				Log.Debug().Str("car", c.name).Msg("Idle timer is already running")
			}
		}

		select {
		case <-ctx.Done():
			Log.Warn().Str("car", c.name).Msg("Dispatch loop has been signaled to stop")
			return
		case <-c.mailbox.wake:
		case at := <-idleTimeout:
			idleTimer = nil
			idleTimeout = nil
			idleConsumed = true
			if !c.notifyIdle(ctx, at) {
				return
			}
		}
	}
}

// processRequests drains both queues once, current direction first. Idle
// counts as going up. Returns false if ctx was cancelled mid-way.
func (c *Car) processRequests(ctx context.Context) bool {
	first := elevconsts.Up
	if c.status == elevconsts.GoingDown {
		first = elevconsts.Down
	}

	if !c.processRequestsByDirection(ctx, first) {
		return false
	}
	return c.processRequestsByDirection(ctx, first.Opposite())
}

func (c *Car) processRequestsByDirection(ctx context.Context, dir elevconsts.Direction) bool {
	for {
		request, ok := c.mailbox.pop(dir)
		if !ok {
			break
		}

		c.destinationFloor = request.RequestedFloor()
		c.status = elevconsts.StatusFor(dir)
		c.publish()
		Log.Info().Str("car", c.name).Msgf("Going %s to floor %d", strings.ToLower(dir.String()), c.destinationFloor)

		travel := time.NewTimer(c.travelDelay)
		select {
		case <-ctx.Done():
			travel.Stop()
			return false
		case <-travel.C:
		}

		c.currentFloor = c.destinationFloor
		c.publish()
		Log.Info().Str("car", c.name).Msgf("Stopped at floor %d", c.currentFloor)
	}

	c.switchStatus(dir)
	return true
}

// switchStatus turns the car around if the opposite queue has work, else
// the car goes idle.
func (c *Car) switchStatus(current elevconsts.Direction) {
	opposite := current.Opposite()
	if c.mailbox.count(opposite) > 0 {
		c.status = elevconsts.StatusFor(opposite)
		c.publish()
		Log.Debug().Str("car", c.name).Msgf("Switching to %s", c.status)
		return
	}
	c.setIdle()
}

func (c *Car) setIdle() {
	if c.status == elevconsts.Idle {
		return
	}
	c.status = elevconsts.Idle
	c.destinationFloor = c.currentFloor
	c.publish()
	Log.Info().Str("car", c.name).Int("floor", c.currentFloor).Msg("Elevator idle")
}

func (c *Car) notifyIdle(ctx context.Context, at time.Time) bool {
	event := elevevent.IdleEvent{Car: c.name, Floor: c.currentFloor, At: at}
	if c.idleEvents == nil {
		Log.Debug().Str("car", c.name).Msgf("No listener for %v", event)
		return true
	}

	Log.Info().Str("car", c.name).Msgf("Idle for %v, notifying", c.idleTimeout)
	select {
	case c.idleEvents <- event:
		return true
	case <-ctx.Done():
		return false
	}
}

func (c *Car) publish() {
	snapshot := &Snapshot{
		Name:             c.name,
		Status:           c.status,
		CurrentFloor:     c.currentFloor,
		DestinationFloor: c.destinationFloor,
	}
	c.snapshot.Store(snapshot)
	if c.onPublish != nil {
		c.onPublish(*snapshot)
	}
}
