package trafikverket

import (
	"context"
	"time"

	"github.com/beevik/etree"
)

// StationFromElement maps one TrainStation element to a StationInfo.
func StationFromElement(node *etree.Element) (*StationInfo, error) {
	helper := NewNodeHelper(node)
	signature, err := helper.Text("LocationSignature")
	if err != nil {
		return nil, err
	}
	name, err := helper.Text("AdvertisedLocationName")
	if err != nil {
		return nil, err
	}
	advertised, err := helper.Text("Advertised")
	if err != nil {
		return nil, err
	}
	if signature == nil {
		return nil, missingFieldError("TrainStation", "LocationSignature")
	}
	if name == nil {
		return nil, missingFieldError("TrainStation", "AdvertisedLocationName")
	}
	return &StationInfo{Signature: *signature, Name: *name, Advertised: advertised}, nil
}

// TrainStopFromElement maps one TrainAnnouncement element to a TrainStop.
// The three departure times keep their wire wall clock with the Stockholm
// zone attached; ModifiedTime is UTC.
func TrainStopFromElement(node *etree.Element) (*TrainStop, error) {
	helper := NewNodeHelper(node)
	activityID, err := helper.Text("ActivityId")
	if err != nil {
		return nil, err
	}
	canceled, err := helper.Bool("Canceled")
	if err != nil {
		return nil, err
	}
	advertised, err := helper.DateTime("AdvertisedTimeAtLocation")
	if err != nil {
		return nil, err
	}
	estimated, err := helper.DateTime("EstimatedTimeAtLocation")
	if err != nil {
		return nil, err
	}
	atLocation, err := helper.DateTime("TimeAtLocation")
	if err != nil {
		return nil, err
	}
	modified, err := helper.DateTimeModified("ModifiedTime")
	if err != nil {
		return nil, err
	}
	if activityID == nil {
		return nil, missingFieldError("TrainAnnouncement", "ActivityId")
	}

	loc, err := stockholm()
	if err != nil {
		return nil, err
	}
	return &TrainStop{
		ID:                 *activityID,
		Canceled:           canceled != nil && *canceled,
		AdvertisedTime:     inZone(advertised, loc),
		EstimatedTime:      inZone(estimated, loc),
		TimeAtLocation:     inZone(atLocation, loc),
		OtherInformation:   helper.Texts("OtherInformation/Description"),
		Deviations:         helper.Texts("Deviation/Description"),
		ModifiedTime:       modified,
		ProductDescription: helper.Texts("ProductInformation/Description"),
	}, nil
}

// GetTrainStation retrieves exactly one advertised train station by name.
func (c *Client) GetTrainStation(ctx context.Context, name string) (*StationInfo, error) {
	stations, err := c.MakeRequest(ctx, Query{
		ObjectType:    "TrainStation",
		SchemaVersion: "1.4",
		Includes:      StationInfoFields,
		Filters: []Filter{
			Field(OpEqual, "AdvertisedLocationName", name),
			Field(OpEqual, "Advertised", "true"),
		},
	})
	if err != nil {
		return nil, err
	}
	if len(stations) == 0 {
		return nil, ErrNoTrainStation
	}
	if len(stations) > 1 {
		return nil, ErrMultipleTrainStations
	}
	return StationFromElement(stations[0])
}

// SearchTrainStations retrieves all advertised train stations whose name
// matches the given pattern.
func (c *Client) SearchTrainStations(ctx context.Context, name string) ([]*StationInfo, error) {
	stations, err := c.MakeRequest(ctx, Query{
		ObjectType:    "TrainStation",
		SchemaVersion: "1.4",
		Includes:      []string{"AdvertisedLocationName", "LocationSignature", "Advertised", "Deleted"},
		Filters: []Filter{
			Field(OpLike, "AdvertisedLocationName", name),
			Field(OpEqual, "Advertised", "true"),
		},
	})
	if err != nil {
		return nil, err
	}
	if len(stations) == 0 {
		return nil, ErrNoTrainStation
	}

	result := make([]*StationInfo, 0, len(stations))
	for _, station := range stations {
		info, err := StationFromElement(station)
		if err != nil {
			return nil, err
		}
		result = append(result, info)
	}
	return result, nil
}

// trainStopFilters builds the shared filter set for departure lookups.
func trainStopFilters(from, to *StationInfo, timeOp Operation, at time.Time, product string, excludeCanceled bool) []Filter {
	filters := []Filter{
		Field(OpEqual, "ActivityType", "Avgang"),
		Field(OpEqual, "LocationSignature", from.Signature),
		Field(timeOp, "AdvertisedTimeAtLocation", at.Format(DateTimeInputLayout)),
		Or(
			Field(OpEqual, "ViaToLocation.LocationName", to.Signature),
			Field(OpEqual, "ToLocation.LocationName", to.Signature),
		),
	}
	if product != "" {
		filters = append(filters, Field(OpLike, "ProductInformation.Description", product))
	}
	if excludeCanceled {
		filters = append(filters, Field(OpEqual, "Canceled", "false"))
	}
	return filters
}

// GetTrainStop retrieves the departure from one station towards another at
// an exact advertised time.
func (c *Client) GetTrainStop(ctx context.Context, from, to *StationInfo, at time.Time, product string, excludeCanceled bool) (*TrainStop, error) {
	announcements, err := c.MakeRequest(ctx, Query{
		ObjectType:    "TrainAnnouncement",
		SchemaVersion: "1.6",
		Includes:      TrainStopFields,
		Filters:       trainStopFilters(from, to, OpEqual, at, product, excludeCanceled),
	})
	if err != nil {
		return nil, err
	}
	if len(announcements) == 0 {
		return nil, ErrNoTrainAnnouncement
	}
	if len(announcements) > 1 {
		return nil, ErrMultipleTrainAnnouncements
	}
	return TrainStopFromElement(announcements[0])
}

// GetNextTrainStops retrieves the next count departures from one station
// towards another after the given time.
func (c *Client) GetNextTrainStops(ctx context.Context, from, to *StationInfo, after time.Time, product string, excludeCanceled bool, count int) ([]*TrainStop, error) {
	announcements, err := c.MakeRequest(ctx, Query{
		ObjectType:    "TrainAnnouncement",
		SchemaVersion: "1.8",
		Includes:      TrainStopFields,
		Filters:       trainStopFilters(from, to, OpGreaterThanEqual, after, product, excludeCanceled),
		Limit:         count,
		Sort:          []FieldSort{{Field: "AdvertisedTimeAtLocation", Order: Ascending}},
	})
	if err != nil {
		return nil, err
	}
	if len(announcements) == 0 {
		return nil, ErrNoTrainAnnouncement
	}
	if len(announcements) > count {
		return nil, ErrMultipleTrainAnnouncements
	}

	stops := make([]*TrainStop, 0, len(announcements))
	for _, announcement := range announcements {
		stop, err := TrainStopFromElement(announcement)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	return stops, nil
}

// GetNextTrainStop retrieves the next departure from one station towards
// another after the given time.
func (c *Client) GetNextTrainStop(ctx context.Context, from, to *StationInfo, after time.Time, product string, excludeCanceled bool) (*TrainStop, error) {
	announcements, err := c.MakeRequest(ctx, Query{
		ObjectType:    "TrainAnnouncement",
		SchemaVersion: "1.6",
		Includes:      TrainStopFields,
		Filters:       trainStopFilters(from, to, OpGreaterThanEqual, after, product, excludeCanceled),
		Limit:         1,
		Sort:          []FieldSort{{Field: "AdvertisedTimeAtLocation", Order: Ascending}},
	})
	if err != nil {
		return nil, err
	}
	if len(announcements) == 0 {
		return nil, ErrNoTrainAnnouncement
	}
	if len(announcements) > 1 {
		return nil, ErrMultipleTrainAnnouncements
	}
	return TrainStopFromElement(announcements[0])
}
