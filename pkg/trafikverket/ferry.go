package trafikverket

import (
	"context"
	"strconv"
	"time"

	"github.com/beevik/etree"
)

// FerryRouteFromElement maps one FerryRoute element to a FerryRoute.
func FerryRouteFromElement(node *etree.Element) (*FerryRoute, error) {
	helper := NewNodeHelper(node)
	id, err := helper.Text("Id")
	if err != nil {
		return nil, err
	}
	name, err := helper.Text("Name")
	if err != nil {
		return nil, err
	}
	shortName, err := helper.Text("Shortname")
	if err != nil {
		return nil, err
	}
	routeType, err := helper.Text("Type/Name")
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, missingFieldError("FerryRoute", "Id")
	}
	if name == nil {
		return nil, missingFieldError("FerryRoute", "Name")
	}
	return &FerryRoute{ID: *id, Name: *name, ShortName: shortName, RouteType: routeType}, nil
}

// FerryStopFromElement maps one FerryAnnouncement element to a FerryStop.
// The departure time keeps its wire wall clock with the Stockholm zone
// attached; ModifiedTime is UTC.
func FerryStopFromElement(node *etree.Element) (*FerryStop, error) {
	helper := NewNodeHelper(node)
	id, err := helper.Text("Id")
	if err != nil {
		return nil, err
	}
	deleted, err := helper.Bool("Deleted")
	if err != nil {
		return nil, err
	}
	departure, err := helper.DateTime("DepartureTime")
	if err != nil {
		return nil, err
	}
	modified, err := helper.DateTimeModified("ModifiedTime")
	if err != nil {
		return nil, err
	}
	fromHarbor, err := helper.Text("FromHarbor/Name")
	if err != nil {
		return nil, err
	}
	toHarbor, err := helper.Text("ToHarbor/Name")
	if err != nil {
		return nil, err
	}
	routeName, err := helper.Text("Route/Name")
	if err != nil {
		return nil, err
	}
	routeShortName, err := helper.Text("Route/Shortname")
	if err != nil {
		return nil, err
	}
	routeType, err := helper.Text("Route/Type/Name")
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, missingFieldError("FerryAnnouncement", "Id")
	}
	if routeName == nil {
		return nil, missingFieldError("FerryAnnouncement", "Route.Name")
	}

	loc, err := stockholm()
	if err != nil {
		return nil, err
	}
	return &FerryStop{
		ID:               *id,
		Deleted:          deleted != nil && *deleted,
		DepartureTime:    inZone(departure, loc),
		OtherInformation: helper.Texts("Info"),
		DeviationIDs:     helper.Texts("DeviationId"),
		ModifiedTime:     modified,
		FromHarborName:   fromHarbor,
		ToHarborName:     toHarbor,
		RouteName:        *routeName,
		RouteShortName:   routeShortName,
		RouteType:        routeType,
	}, nil
}

// DeviationFromElement maps one Situation element to a DeviationInfo. Start
// and end times keep their wire wall clock with the Stockholm zone attached.
func DeviationFromElement(node *etree.Element) (*DeviationInfo, error) {
	helper := NewNodeHelper(node)
	id, err := helper.Text("Deviation/Id")
	if err != nil {
		return nil, err
	}
	header, err := helper.Text("Deviation/Header")
	if err != nil {
		return nil, err
	}
	message, err := helper.Text("Deviation/Message")
	if err != nil {
		return nil, err
	}
	start, err := helper.DateTime("Deviation/StartTime")
	if err != nil {
		return nil, err
	}
	end, err := helper.DateTime("Deviation/EndTime")
	if err != nil {
		return nil, err
	}
	iconID, err := helper.Text("Deviation/IconId")
	if err != nil {
		return nil, err
	}
	locationDesc, err := helper.Text("Deviation/LocationDescriptor")
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, missingFieldError("Situation", "Deviation.Id")
	}

	loc, err := stockholm()
	if err != nil {
		return nil, err
	}
	return &DeviationInfo{
		ID:           *id,
		Header:       header,
		Message:      message,
		StartTime:    inZone(start, loc),
		EndTime:      inZone(end, loc),
		IconID:       iconID,
		LocationDesc: locationDesc,
	}, nil
}

func (c *Client) ferryRouteLookup(ctx context.Context, filter Filter) (*FerryRoute, error) {
	routes, err := c.MakeRequest(ctx, Query{
		ObjectType:    "FerryRoute",
		SchemaVersion: "1.2",
		Includes:      FerryRouteFields,
		Filters:       []Filter{filter},
	})
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, ErrNoFerryRoute
	}
	if len(routes) > 1 {
		return nil, ErrMultipleFerryRoutes
	}
	return FerryRouteFromElement(routes[0])
}

// GetFerryRoute retrieves exactly one ferry route by name.
func (c *Client) GetFerryRoute(ctx context.Context, name string) (*FerryRoute, error) {
	return c.ferryRouteLookup(ctx, Field(OpEqual, "Name", name))
}

// GetFerryRouteByID retrieves exactly one ferry route by id.
func (c *Client) GetFerryRouteByID(ctx context.Context, id int) (*FerryRoute, error) {
	return c.ferryRouteLookup(ctx, Field(OpEqual, "Id", strconv.Itoa(id)))
}

// SearchFerryRoutes retrieves all ferry routes whose name matches the given
// pattern.
func (c *Client) SearchFerryRoutes(ctx context.Context, name string) ([]*FerryRoute, error) {
	routes, err := c.MakeRequest(ctx, Query{
		ObjectType:    "FerryRoute",
		SchemaVersion: "1.2",
		Includes:      FerryRouteFields,
		Filters:       []Filter{Field(OpLike, "Name", name)},
	})
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, ErrNoFerryRoute
	}

	result := make([]*FerryRoute, 0, len(routes))
	for _, route := range routes {
		info, err := FerryRouteFromElement(route)
		if err != nil {
			return nil, err
		}
		result = append(result, info)
	}
	return result, nil
}

// GetNextFerryStops retrieves the next count ferry departures from a harbor
// after the given time. An empty toHarbor matches any destination.
func (c *Client) GetNextFerryStops(ctx context.Context, fromHarbor, toHarbor string, after time.Time, count int) ([]*FerryStop, error) {
	filters := []Filter{
		Field(OpEqual, "FromHarbor.Name", fromHarbor),
		Field(OpGreaterThanEqual, "DepartureTime", after.Format(DateTimeInputLayout)),
	}
	if toHarbor != "" {
		filters = append(filters, Field(OpEqual, "ToHarbor.Name", toHarbor))
	}

	announcements, err := c.MakeRequest(ctx, Query{
		ObjectType:    "FerryAnnouncement",
		SchemaVersion: "1.2",
		Includes:      FerryStopFields,
		Filters:       filters,
		Limit:         count,
		Sort:          []FieldSort{{Field: "DepartureTime", Order: Ascending}},
	})
	if err != nil {
		return nil, err
	}
	if len(announcements) == 0 {
		return nil, ErrNoFerryAnnouncement
	}

	stops := make([]*FerryStop, 0, len(announcements))
	for _, announcement := range announcements {
		stop, err := FerryStopFromElement(announcement)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	return stops, nil
}

// GetNextFerryStop retrieves the next ferry departure from a harbor after
// the given time.
func (c *Client) GetNextFerryStop(ctx context.Context, fromHarbor, toHarbor string, after time.Time) (*FerryStop, error) {
	stops, err := c.GetNextFerryStops(ctx, fromHarbor, toHarbor, after, 1)
	if err != nil {
		return nil, err
	}
	return stops[0], nil
}

// GetDeviation retrieves deviation info by deviation id.
func (c *Client) GetDeviation(ctx context.Context, id string) (*DeviationInfo, error) {
	deviations, err := c.MakeRequest(ctx, Query{
		ObjectType:    "Situation",
		SchemaVersion: "1.5",
		Includes:      DeviationInfoFields,
		Filters:       []Filter{Field(OpEqual, "Deviation.Id", id)},
	})
	if err != nil {
		return nil, err
	}
	if len(deviations) == 0 {
		return nil, ErrNoDeviation
	}
	if len(deviations) > 1 {
		return nil, ErrMultipleDeviations
	}
	return DeviationFromElement(deviations[0])
}
