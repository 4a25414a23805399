// Command trafikinfo queries the Trafikverket traffic information API from
// the command line and can serve a live departure board.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"trafikinfo/internal/config"
	"trafikinfo/internal/realtime"
	"trafikinfo/internal/server"
	"trafikinfo/internal/storage"
	"trafikinfo/pkg/trafikverket"
)

const lookupTimeout = 10 * time.Second

var methods = []string{
	"search-for-station", "get-train-stop", "get-next-train-stop",
	"get-weather", "get-ferry-route", "search-for-ferry-route",
	"get-next-ferry-stop", "get-camera", "get-deviation", "serve",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var (
		key             = flag.String("key", cfg.APIKey, "Trafikverket API authentication key")
		method          = flag.String("method", "", "one of: "+strings.Join(methods, ", "))
		station         = flag.String("station", "", "station or weather station name")
		fromStation     = flag.String("from-station", "", "departure station name")
		toStation       = flag.String("to-station", "", "destination station name")
		dateTime        = flag.String("date-time", "", "local time, e.g. 2024-05-01T11:00:00 (default now)")
		route           = flag.String("route", "", "ferry route name")
		fromHarbor      = flag.String("from-harbor", "", "departure harbor name")
		toHarbor        = flag.String("to-harbor", "", "destination harbor name")
		trainProduct    = flag.String("train-product", "", "filter departures by product description")
		excludeCanceled = flag.Bool("exclude-canceled-trains", false, "skip canceled departures")
		count           = flag.Int("count", 1, "number of departures to fetch")
		id              = flag.String("id", "", "deviation id")
		name            = flag.String("name", "", "camera name")
	)
	flag.IntVar(&cfg.Port, "port", cfg.Port, "board server port")
	flag.Parse()

	logger := newLogger(cfg.LogLevel)

	if *key == "" {
		fmt.Fprintln(os.Stderr, "an API key is required (-key or TRAFIKINFO_API_KEY)")
		os.Exit(2)
	}
	cfg.APIKey = *key

	tv := trafikverket.NewClientWithHTTP(cfg.APIKey, cfg.APIURL, &http.Client{Timeout: 30 * time.Second}, logger)

	if *method == "serve" {
		serve(cfg, tv, logger)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	at, err := parseWhen(*dateTime)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -date-time %q: %v\n", *dateTime, err)
		os.Exit(2)
	}

	switch *method {
	case "search-for-station":
		requireFlags(map[string]string{"-station": *station})
		stations, err := tv.SearchTrainStations(ctx, *station)
		exitOn(err)
		for _, s := range stations {
			fmt.Printf("%s: %s\n", s.Name, s.Signature)
		}

	case "get-train-stop":
		requireFlags(map[string]string{"-from-station": *fromStation, "-to-station": *toStation})
		from, to := resolvePair(ctx, tv, *fromStation, *toStation)
		stop, err := tv.GetTrainStop(ctx, from, to, at, *trainProduct, *excludeCanceled)
		exitOn(err)
		printTrainStop(stop)

	case "get-next-train-stop":
		requireFlags(map[string]string{"-from-station": *fromStation, "-to-station": *toStation})
		from, to := resolvePair(ctx, tv, *fromStation, *toStation)
		if *count > 1 {
			stops, err := tv.GetNextTrainStops(ctx, from, to, at, *trainProduct, *excludeCanceled, *count)
			exitOn(err)
			for i, stop := range stops {
				if i > 0 {
					fmt.Println()
				}
				printTrainStop(stop)
			}
		} else {
			stop, err := tv.GetNextTrainStop(ctx, from, to, at, *trainProduct, *excludeCanceled)
			exitOn(err)
			printTrainStop(stop)
		}

	case "get-weather":
		requireFlags(map[string]string{"-station": *station})
		weather, err := tv.GetWeatherStation(ctx, *station)
		exitOn(err)
		printWeather(weather)

	case "get-ferry-route":
		requireFlags(map[string]string{"-route": *route})
		ferryRoute, err := tv.GetFerryRoute(ctx, *route)
		exitOn(err)
		printFerryRoute(ferryRoute)

	case "search-for-ferry-route":
		requireFlags(map[string]string{"-route": *route})
		routes, err := tv.SearchFerryRoutes(ctx, *route)
		exitOn(err)
		for _, r := range routes {
			fmt.Printf("%s: %s\n", r.Name, r.ID)
		}

	case "get-next-ferry-stop":
		requireFlags(map[string]string{"-from-harbor": *fromHarbor})
		if *count > 1 {
			stops, err := tv.GetNextFerryStops(ctx, *fromHarbor, *toHarbor, at, *count)
			exitOn(err)
			for i, stop := range stops {
				if i > 0 {
					fmt.Println()
				}
				printFerryStop(stop)
			}
		} else {
			stop, err := tv.GetNextFerryStop(ctx, *fromHarbor, *toHarbor, at)
			exitOn(err)
			printFerryStop(stop)
		}

	case "get-camera":
		requireFlags(map[string]string{"-name": *name})
		camera, err := tv.GetCamera(ctx, *name)
		exitOn(err)
		printCamera(camera)

	case "get-deviation":
		requireFlags(map[string]string{"-id": *id})
		deviation, err := tv.GetDeviation(ctx, *id)
		exitOn(err)
		printDeviation(deviation)

	case "":
		fmt.Fprintln(os.Stderr, "-method is required; one of: "+strings.Join(methods, ", "))
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "unknown method %q; one of: %s\n", *method, strings.Join(methods, ", "))
		os.Exit(2)
	}
}

// serve runs the departure board server with the alerts fetcher and lookup
// cache, shutting down on SIGINT/SIGTERM.
func serve(cfg *config.Config, tv *trafikverket.Client, logger *slog.Logger) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	db, err := storage.Open(cfg.DBPath, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rtStore := realtime.NewStore()
	if cfg.AlertsURL != "" {
		fetcher := realtime.NewFetcher(cfg.AlertsURL, rtStore, logger)
		go fetcher.Start(ctx)
	} else {
		logger.Info("TRAFIKINFO_ALERTS_URL not set, alerts fetcher disabled")
	}

	srv := server.New(cfg, tv, db, rtStore, logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func resolvePair(ctx context.Context, tv *trafikverket.Client, fromName, toName string) (*trafikverket.StationInfo, *trafikverket.StationInfo) {
	from, err := tv.GetTrainStation(ctx, fromName)
	exitOn(err)
	to, err := tv.GetTrainStation(ctx, toName)
	exitOn(err)
	return from, to
}

// parseWhen parses a -date-time flag value as Trafikverket wall-clock time.
// An empty value means now.
func parseWhen(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse(trafikverket.DateTimeInputLayout, s)
}

// missingFlags returns the names of required flags whose values are empty,
// sorted for stable output.
func missingFlags(flags map[string]string) []string {
	var missing []string
	for name, value := range flags {
		if value == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

func requireFlags(flags map[string]string) {
	missing := missingFlags(flags)
	if len(missing) == 0 {
		return
	}
	for _, name := range missing {
		fmt.Fprintf(os.Stderr, "%s is required for this method\n", name)
	}
	os.Exit(2)
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printTrainStop(stop *trafikverket.TrainStop) {
	fmt.Printf("id: %s\n", stop.ID)
	fmt.Printf("state: %s\n", stop.State())
	printTime("advertised time", stop.AdvertisedTime)
	printTime("estimated time", stop.EstimatedTime)
	printTime("time at location", stop.TimeAtLocation)
	if delay, ok := stop.Delay(); ok {
		fmt.Printf("delay: %s\n", delay)
	}
	printList("other information", stop.OtherInformation)
	printList("deviations", stop.Deviations)
	printList("product", stop.ProductDescription)
}

func printFerryStop(stop *trafikverket.FerryStop) {
	fmt.Printf("id: %s\n", stop.ID)
	fmt.Printf("route: %s\n", stop.RouteName)
	fmt.Printf("state: %s\n", stop.State())
	printTime("departure time", stop.DepartureTime)
	printText("from harbor", stop.FromHarborName)
	printText("to harbor", stop.ToHarborName)
	printList("info", stop.OtherInformation)
	printList("deviation ids", stop.DeviationIDs)
}

func printFerryRoute(route *trafikverket.FerryRoute) {
	fmt.Printf("id: %s\n", route.ID)
	fmt.Printf("name: %s\n", route.Name)
	printText("short name", route.ShortName)
	printText("type", route.RouteType)
}

func printWeather(w *trafikverket.WeatherStationInfo) {
	fmt.Printf("station: %s (%s)\n", w.StationName, w.StationID)
	printNumber("air temperature (C)", w.AirTemp)
	printNumber("road temperature (C)", w.RoadTemp)
	printNumber("dew point (C)", w.DewPoint)
	printNumber("humidity (%)", w.Humidity)
	printNumber("visible distance (m)", w.VisibleDistance)
	printText("precipitation", w.PrecipitationType)
	fmt.Printf("raining: %t\n", w.Raining)
	fmt.Printf("snowing: %t\n", w.Snowing)
	printNumber("precipitation amount (mm/h)", w.PrecipitationAmount)
	printText("wind direction", w.WindDirection)
	printNumber("wind force (m/s)", w.WindForce)
	printNumber("wind force max (m/s)", w.WindForceMax)
	printTime("measure time", w.MeasureTime)
}

func printCamera(c *trafikverket.CameraInfo) {
	fmt.Printf("name: %s\n", c.Name)
	fmt.Printf("id: %s\n", c.ID)
	fmt.Printf("active: %t\n", c.Active)
	printText("description", c.Description)
	printText("location", c.Location)
	printText("photo url", c.PhotoURL)
	printTime("photo time", c.PhotoTime)
}

func printDeviation(d *trafikverket.DeviationInfo) {
	fmt.Printf("id: %s\n", d.ID)
	printText("header", d.Header)
	printText("message", d.Message)
	printTime("start time", d.StartTime)
	printTime("end time", d.EndTime)
	printText("location", d.LocationDesc)
}

func printText(label string, value *string) {
	if value != nil {
		fmt.Printf("%s: %s\n", label, *value)
	}
}

func printNumber(label string, value *float64) {
	if value != nil {
		fmt.Printf("%s: %g\n", label, *value)
	}
}

func printTime(label string, value *time.Time) {
	if value != nil {
		fmt.Printf("%s: %s\n", label, value.Format("2006-01-02 15:04"))
	}
}

func printList(label string, values []string) {
	if len(values) > 0 {
		fmt.Printf("%s: %s\n", label, strings.Join(values, "; "))
	}
}
