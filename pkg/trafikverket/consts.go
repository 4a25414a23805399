package trafikverket

// DefaultEndpoint is the Trafikverket open API query endpoint.
const DefaultEndpoint = "https://api.trafikinfo.trafikverket.se/v2/data.xml"

// SwedenTimezone is the IANA identifier for Swedish civil time.
const SwedenTimezone = "Europe/Stockholm"

// Wire timestamp layouts. General fields carry fractional seconds and a
// numeric UTC offset; ModifiedTime fields carry fractional seconds and a
// literal trailing Z and are always UTC. time.Parse accepts the fractional
// part even though the layouts don't spell it out.
const (
	layoutDateTime         = "2006-01-02T15:04:05-07:00"
	layoutDateTimeModified = "2006-01-02T15:04:05Z"
)

// DateTimeInputLayout is the layout callers use for human-entered times.
const DateTimeInputLayout = "2006-01-02T15:04:05"

// Per-resource INCLUDE field tables. The same tables drive the request
// builders and the mappers' path constants.
var (
	StationInfoFields = []string{"LocationSignature", "AdvertisedLocationName"}

	TrainStopFields = []string{
		"ActivityId",
		"Canceled",
		"AdvertisedTimeAtLocation",
		"EstimatedTimeAtLocation",
		"TimeAtLocation",
		"OtherInformation",
		"Deviation",
		"ModifiedTime",
		"ProductInformation",
	}

	FerryRouteFields = []string{"Id", "Name", "Shortname", "Type.Name"}

	FerryStopFields = []string{
		"Id",
		"Deleted",
		"DepartureTime",
		"Route.Name",
		"Route.Shortname",
		"Route.Type.Name",
		"DeviationId",
		"ModifiedTime",
		"FromHarbor",
		"ToHarbor",
		"Info",
	}

	DeviationInfoFields = []string{
		"Deviation.Id",
		"Deviation.Header",
		"Deviation.EndTime",
		"Deviation.StartTime",
		"Deviation.Message",
		"Deviation.IconId",
		"Deviation.LocationDescriptor",
	}

	CameraInfoFields = []string{
		"Name",
		"Id",
		"Active",
		"Deleted",
		"Description",
		"Direction",
		"HasFullSizePhoto",
		"Location",
		"ModifiedTime",
		"PhotoTime",
		"PhotoUrl",
		"Status",
		"Type",
	}

	// Precipitation possible values: no, rain, freezing_rain, snow, sleet, yes
	WeatherFields = []string{
		"Name",
		"Id",
		"ModifiedTime",
		"Observation.Sample",
		"Observation.Air.Temperature.Value",
		"Observation.Air.RelativeHumidity.Value",
		"Observation.Air.Dewpoint.Value",
		"Observation.Air.VisibleDistance.Value",
		"Observation.Wind.Direction.Value",
		"Observation.Wind.Height",
		"Observation.Wind.Speed.Value",
		"Observation.Aggregated30minutes.Wind.SpeedMax.Value",
		"Observation.Weather.Precipitation",
		"Observation.Aggregated30minutes.Precipitation.TotalWaterEquivalent.Value",
		"Observation.Aggregated30minutes.Precipitation.Rain",
		"Observation.Aggregated30minutes.Precipitation.Snow",
		"Observation.Surface.Temperature.Value",
		"Observation.Surface.Ice",
		"Observation.Surface.IceDepth.Value",
		"Observation.Surface.Snow",
		"Observation.Surface.SnowDepth.Solid.Value",
		"Observation.Surface.SnowDepth.WaterEquivalent.Value",
		"Observation.Surface.Water",
		"Observation.Surface.WaterDepth.Value",
	}
)
