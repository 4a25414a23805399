package trafikverket

import "time"

// StationInfo describes a train station.
type StationInfo struct {
	Signature  string  `json:"signature"`
	Name       string  `json:"name"`
	Advertised *string `json:"advertised,omitempty"`
}

// TrainStopStatus is the derived state of a train departure.
type TrainStopStatus string

const (
	TrainOnTime   TrainStopStatus = "on_time"
	TrainDelayed  TrainStopStatus = "delayed"
	TrainCanceled TrainStopStatus = "canceled"
)

// TrainStop describes one train departure from a station.
type TrainStop struct {
	ID                 string     `json:"train_stop_id"`
	Canceled           bool       `json:"canceled"`
	AdvertisedTime     *time.Time `json:"advertised_time_at_location,omitempty"`
	EstimatedTime      *time.Time `json:"estimated_time_at_location,omitempty"`
	TimeAtLocation     *time.Time `json:"time_at_location,omitempty"`
	OtherInformation   []string   `json:"other_information"`
	Deviations         []string   `json:"deviations"`
	ModifiedTime       *time.Time `json:"modified_time,omitempty"`
	ProductDescription []string   `json:"product_description"`
}

// State derives the status of the departure. Cancellation wins over any
// time comparison; a differing actual time wins over a differing estimate.
func (s *TrainStop) State() TrainStopStatus {
	if s.Canceled {
		return TrainCanceled
	}
	if s.AdvertisedTime != nil && s.TimeAtLocation != nil && !s.AdvertisedTime.Equal(*s.TimeAtLocation) {
		return TrainDelayed
	}
	if s.AdvertisedTime != nil && s.EstimatedTime != nil && !s.AdvertisedTime.Equal(*s.EstimatedTime) {
		return TrainDelayed
	}
	return TrainOnTime
}

// Delay returns the delay of the departure, preferring the actual time over
// the estimate. Canceled stops have no delay.
func (s *TrainStop) Delay() (time.Duration, bool) {
	if s.Canceled {
		return 0, false
	}
	if s.AdvertisedTime != nil && s.TimeAtLocation != nil && !s.AdvertisedTime.Equal(*s.TimeAtLocation) {
		return s.TimeAtLocation.Sub(*s.AdvertisedTime), true
	}
	if s.AdvertisedTime != nil && s.EstimatedTime != nil && !s.AdvertisedTime.Equal(*s.EstimatedTime) {
		return s.EstimatedTime.Sub(*s.AdvertisedTime), true
	}
	return 0, false
}

// FerryRoute describes a ferry route.
type FerryRoute struct {
	ID        string  `json:"ferry_route_id"`
	Name      string  `json:"name"`
	ShortName *string `json:"short_name,omitempty"`
	RouteType *string `json:"route_type,omitempty"`
}

// FerryStopStatus is the derived state of a ferry departure. Ferries expose
// no scheduled-vs-actual comparison, so there is no delayed state.
type FerryStopStatus string

const (
	FerryOnTime  FerryStopStatus = "on_time"
	FerryDeleted FerryStopStatus = "deleted"
)

// FerryStop describes one ferry departure.
type FerryStop struct {
	ID               string     `json:"ferry_stop_id"`
	Deleted          bool       `json:"deleted"`
	DepartureTime    *time.Time `json:"departure_time,omitempty"`
	OtherInformation []string   `json:"other_information"`
	DeviationIDs     []string   `json:"deviation_id"`
	ModifiedTime     *time.Time `json:"modified_time,omitempty"`
	FromHarborName   *string    `json:"from_harbor_name,omitempty"`
	ToHarborName     *string    `json:"to_harbor_name,omitempty"`
	RouteName        string     `json:"route_name"`
	RouteShortName   *string    `json:"route_short_name,omitempty"`
	RouteType        *string    `json:"route_type,omitempty"`
}

// State derives the status of the departure.
func (s *FerryStop) State() FerryStopStatus {
	if s.Deleted {
		return FerryDeleted
	}
	return FerryOnTime
}

// WeatherStationInfo describes a road weather station and its latest
// observation. Measurements the station didn't report are nil.
type WeatherStationInfo struct {
	StationName              string     `json:"station_name"`
	StationID                string     `json:"station_id"`
	RoadTemp                 *float64   `json:"road_temp,omitempty"`        // celsius
	AirTemp                  *float64   `json:"air_temp,omitempty"`         // celsius
	DewPoint                 *float64   `json:"dew_point,omitempty"`        // celsius
	Humidity                 *float64   `json:"humidity,omitempty"`         // percent
	VisibleDistance          *float64   `json:"visible_distance,omitempty"` // meter
	PrecipitationType        *string    `json:"precipitationtype,omitempty"`
	Raining                  bool       `json:"raining"`
	Snowing                  bool       `json:"snowing"`
	RoadIce                  bool       `json:"road_ice"`
	RoadIceDepth             *float64   `json:"road_ice_depth,omitempty"` // mm
	RoadSnow                 bool       `json:"road_snow"`
	RoadSnowDepth            *float64   `json:"road_snow_depth,omitempty"` // mm
	RoadWater                bool       `json:"road_water"`
	RoadWaterDepth           *float64   `json:"road_water_depth,omitempty"`            // mm
	RoadWaterEquivalentDepth *float64   `json:"road_water_equivalent_depth,omitempty"` // mm
	WindDirection            *string    `json:"winddirection,omitempty"`               // degrees
	WindHeight               *float64   `json:"wind_height,omitempty"`                 // meter
	WindForce                *float64   `json:"windforce,omitempty"`                   // m/s
	WindForceMax             *float64   `json:"windforcemax,omitempty"`                // m/s
	MeasureTime              *time.Time `json:"measure_time,omitempty"`
	PrecipitationAmount      *float64   `json:"precipitation_amount,omitempty"` // mm/30min rescaled to mm/h
	ModifiedTime             *time.Time `json:"modified_time,omitempty"`
}

// CameraInfo describes a traffic camera.
type CameraInfo struct {
	Name          string     `json:"camera_name"`
	ID            string     `json:"camera_id"`
	Active        bool       `json:"active"`
	Deleted       bool       `json:"deleted"`
	Description   *string    `json:"description,omitempty"`
	Direction     *string    `json:"direction,omitempty"`
	FullSizePhoto bool       `json:"fullsizephoto"`
	Location      *string    `json:"location,omitempty"`
	ModifiedTime  *time.Time `json:"modified,omitempty"`
	PhotoTime     *time.Time `json:"phototime,omitempty"`
	PhotoURL      *string    `json:"photourl,omitempty"`
	Status        *string    `json:"status,omitempty"`
	CameraType    *string    `json:"camera_type,omitempty"`
}

// DeviationInfo describes a situation deviation.
type DeviationInfo struct {
	ID           string     `json:"deviation_id"`
	Header       *string    `json:"header,omitempty"`
	Message      *string    `json:"message,omitempty"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	IconID       *string    `json:"icon_id,omitempty"`
	LocationDesc *string    `json:"location_desc,omitempty"`
}
