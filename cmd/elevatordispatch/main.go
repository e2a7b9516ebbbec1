package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dinaMadelen/elevator-dispatch/internal/elevconfig"
	"github.com/dinaMadelen/elevator-dispatch/internal/elevfleet"
	"github.com/dinaMadelen/elevator-dispatch/internal/elevrequest"
	"github.com/dinaMadelen/elevator-dispatch/internal/elevutils"
	"github.com/dinaMadelen/elevator-dispatch/internal/logger"

	"github.com/rs/zerolog"
)

var Logger = logger.GetLoggerConfigured(zerolog.DebugLevel)

// submitted when no -request is given
var defaultRequests = []string{"ext:2:up", "int:2:3", "ext:8:up"}

func main() {
	args := elevutils.ProcessCmdArgs()

	config := elevconfig.Default()
	if args.ConfigPath != "" {
		loaded, err := elevconfig.Load(args.ConfigPath)
		if err != nil {
			Logger.Fatal().Msgf("Error loading config: %v", err)
		}
		config = loaded
	}
	if err := config.ApplyEnv(args.EnvPath); err != nil {
		Logger.Fatal().Msgf("Error applying env overrides: %v", err)
	}
	Logger = logger.GetLoggerConfigured(logger.ParseLevel(config.LogLevel))

	// Starting Programme
	Logger.Info().Msg("Starting Elevator Dispatch Programme")

	fleet, err := elevfleet.NewFleet(args.Identifier, config)
	if err != nil {
		Logger.Fatal().Msgf("Error creating fleet: %v", err)
	}
	Logger.Info().Msgf("Fleet: %v", fleet.MetaData.String())

	inputs := args.Requests
	if len(inputs) == 0 {
		inputs = defaultRequests
	}
	for _, input := range inputs {
		request, err := elevrequest.Parse(input)
		if err != nil {
			Logger.Warn().Msgf("Skipping request: %v", err)
			continue
		}
		name, err := fleet.Submit(request)
		if err != nil {
			Logger.Warn().Msgf("Skipping request: %v", err)
			continue
		}
		Logger.Info().Msgf("%v handled by %s", request, name)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fleet.Run(ctx); err != nil {
		Logger.Warn().Msgf("Stopped before all requests were served: %v", err)
	}
	if args.Linger {
		Logger.Info().Msg("Lingering until interrupted")
		<-ctx.Done()
	}

	if err := fleet.Stop(); err != nil {
		Logger.Error().Msgf("Error stopping fleet: %v", err)
	}
	for _, snapshot := range fleet.Status() {
		Logger.Info().Msgf("%s resting at floor %d (%s)", snapshot.Name, snapshot.CurrentFloor, snapshot.Status)
	}
}
