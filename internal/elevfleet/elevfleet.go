package elevfleet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dinaMadelen/elevator-dispatch/internal/elevcar"
	"github.com/dinaMadelen/elevator-dispatch/internal/elevconfig"
	"github.com/dinaMadelen/elevator-dispatch/internal/elevconsts"
	"github.com/dinaMadelen/elevator-dispatch/internal/elevevent"
	"github.com/dinaMadelen/elevator-dispatch/internal/elevmetadata"
	"github.com/dinaMadelen/elevator-dispatch/internal/elevrequest"
	"github.com/dinaMadelen/elevator-dispatch/internal/elevutils"
	"github.com/dinaMadelen/elevator-dispatch/internal/logger"

	"github.com/xyproto/randomstring"
)

var Log = logger.GetLogger()

const (
	IDLE_EVENT_CHANNEL_SIZE = 10
	IDENTIFIER_DEFAULT_LEN  = 10
)

// Fleet owns the top and bottom car, assigns every request to one of them
// and sends cars that stayed idle too long to the rest floor.
type Fleet struct {
	MetaData *elevmetadata.FleetMetaData

	top    *elevcar.Car
	bottom *elevcar.Car
	cars   map[string]*elevcar.Car

	floorCount    int
	idleRestFloor int
	idleEvents    chan elevevent.IdleEvent

	assignMutex sync.Mutex //serialises assignments and rest requests

	runMutex sync.Mutex
	running  bool

	//used for graceful shutdown
	waitGroupArray []*sync.WaitGroup
	cancelArray    []context.CancelFunc
}

func NewFleet(identifier string, config elevconfig.Config) (*Fleet, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if identifier == "" {
		identifier = randomstring.EnglishFrequencyString(IDENTIFIER_DEFAULT_LEN)
		Log.Warn().Msgf("No fleet identifier provided, generated random identifier \"%v\"", identifier)
	}

	idleEvents := make(chan elevevent.IdleEvent, IDLE_EVENT_CHANNEL_SIZE)

	// we start off the cars at their resting floors
	top := elevcar.NewCar(elevconsts.TOP_CAR_NAME, config.TopRestFloor, config.TravelDelay(), config.IdleTimeout(), idleEvents)
	bottom := elevcar.NewCar(elevconsts.BOTTOM_CAR_NAME, config.BottomRestFloor, config.TravelDelay(), config.IdleTimeout(), idleEvents)

	return &Fleet{
		MetaData: &elevmetadata.FleetMetaData{
			SoftwareVersion: elevutils.GetGitHash(),
			Identifier:      identifier,
			FloorCount:      config.FloorCount,
			Cars:            []string{top.Name(), bottom.Name()},
		},
		top:    top,
		bottom: bottom,
		cars: map[string]*elevcar.Car{
			top.Name():    top,
			bottom.Name(): bottom,
		},
		floorCount:    config.FloorCount,
		idleRestFloor: config.IdleRestFloor,
		idleEvents:    idleEvents,
	}, nil
}

func (f *Fleet) Cars() []*elevcar.Car {
	return []*elevcar.Car{f.top, f.bottom}
}

func (f *Fleet) Car(name string) (*elevcar.Car, bool) {
	car, ok := f.cars[name]
	return car, ok
}

func (f *Fleet) Status() []elevcar.Snapshot {
	return []elevcar.Snapshot{f.top.Snapshot(), f.bottom.Snapshot()}
}

// AssignRequest validates the request and queues it on the car that will be
// closest to the requested floor. A moving car counts as being at its
// destination. Equal distances go to the top car.
func (f *Fleet) AssignRequest(request elevrequest.Request) (*elevcar.Car, error) {
	if err := request.Validate(f.floorCount); err != nil {
		Log.Warn().Msgf("Rejected %v: %v", request, err)
		return nil, err
	}

	f.assignMutex.Lock()
	defer f.assignMutex.Unlock()

	topFloor := f.top.Snapshot().EffectiveFloor()
	bottomFloor := f.bottom.Snapshot().EffectiveFloor()

	car := f.closerCar(topFloor, bottomFloor, request.RequestedFloor())
	car.Enqueue(request)

	Log.Info().Str("car", car.Name()).Msgf("Assigned %v (top at %d, bottom at %d)", request, topFloor, bottomFloor)
	return car, nil
}

// Submit is AssignRequest for callers that only need the car's name.
func (f *Fleet) Submit(request elevrequest.Request) (string, error) {
	car, err := f.AssignRequest(request)
	if err != nil {
		return "", err
	}
	return car.Name(), nil
}

func (f *Fleet) closerCar(topFloor int, bottomFloor int, requestedFloor int) *elevcar.Car {
	if abs(topFloor-requestedFloor) > abs(bottomFloor-requestedFloor) {
		return f.bottom
	}
	return f.top
}

// HandleIdle sends a car that stayed idle past the timeout to the rest floor.
// Always the ground floor for now, regardless of where the other car is.
func (f *Fleet) HandleIdle(event elevevent.IdleEvent) {
	car, ok := f.cars[event.Car]
	if !ok {
		Log.Error().Msgf("Idle event for unknown car: %v", event)
		return
	}
	if event.Floor == f.idleRestFloor {
		Log.Debug().Str("car", car.Name()).Msgf("Already resting at floor %d", f.idleRestFloor)
		return
	}

	Log.Info().Str("car", car.Name()).Msgf("Sending idle elevator to floor %d", f.idleRestFloor)

	f.assignMutex.Lock()
	defer f.assignMutex.Unlock()
	car.Enqueue(elevrequest.NewInternal(event.Floor, f.idleRestFloor))
}

// Start launches every car's dispatch loop and the idle event handler, then
// waits until all cars have drained their queues. The loops keep running
// after Start returns, until Stop.
func (f *Fleet) Start(ctx context.Context) error {
	f.runMutex.Lock()
	if !f.running {
		Log.Info().Msg("Starting fleet and all the elevators")

		//Launch Threads One By One
		for _, car := range f.Cars() {
			ctxCar, cancelCar := context.WithCancel(context.Background())
			wgCar := &sync.WaitGroup{}
			f.waitGroupArray = append(f.waitGroupArray, wgCar)
			car.Start(ctxCar, wgCar)
			f.cancelArray = append(f.cancelArray, cancelCar)
		}

		ctxIdle, cancelIdle := context.WithCancel(context.Background())
		wgIdle := &sync.WaitGroup{}
		f.waitGroupArray = append(f.waitGroupArray, wgIdle)
		f.startIdleHandler(ctxIdle, wgIdle)
		f.cancelArray = append(f.cancelArray, cancelIdle)

		f.running = true
	}
	f.runMutex.Unlock()

	for _, car := range f.Cars() {
		if err := car.WaitIdle(ctx); err != nil {
			return fmt.Errorf("waiting for %s: %w", car.Name(), err)
		}
	}
	Log.Info().Msg("All elevators processed their requests")
	return nil
}

// Run is Start under the name the driver uses.
func (f *Fleet) Run(ctx context.Context) error {
	return f.Start(ctx)
}

func (f *Fleet) Stop() error {
	f.runMutex.Lock()
	defer f.runMutex.Unlock()

	if !f.running {
		return errors.New("fleet not running, so cannot stop fleet")
	}

	Log.Debug().Msg("Stopping Fleet")

	//Gracefully shutdown all threads one by one
	for i := len(f.cancelArray) - 1; i >= 0; i-- {
		f.cancelArray[i]()
		f.waitGroupArray[i].Wait()
	}
	f.cancelArray = nil
	f.waitGroupArray = nil

	Log.Debug().Msg("Stopped Fleet")
	f.running = false
	return nil
}

func (f *Fleet) startIdleHandler(ctx context.Context, waitGroup *sync.WaitGroup) {
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		for {
			select {
			case <-ctx.Done():
				Log.Warn().Msgf("Idle handler Go routine has been signaled to stop")
				return
			case event := <-f.idleEvents:
				Log.Info().Msgf("Handling %v after idle timeout", event)
				f.HandleIdle(event)
			}
		}
	}()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
