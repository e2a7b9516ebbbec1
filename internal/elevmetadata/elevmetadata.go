package elevmetadata

import (
	"encoding/json"

	"github.com/dinaMadelen/elevator-dispatch/internal/logger"
)

var Log = logger.GetLogger()

// FleetMetaData is the constant description of one dispatch run.
type FleetMetaData struct {
	SoftwareVersion string   `json:"software_version"`
	Identifier      string   `json:"identifier"`
	FloorCount      int      `json:"floor_count"`
	Cars            []string `json:"cars"`
}

func (fleetMetaData *FleetMetaData) String() string {
	jsonData, err := json.Marshal(fleetMetaData)

	if err != nil {
		Log.Error().Msg("Error Serialising FleetMetaData Object to JSON")
		return ""
	}
	return string(jsonData)
}
