package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"trafikinfo/pkg/trafikverket"
)

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GetStation returns the cached resolution for a station name, or nil when
// the name is unknown or the entry is older than ttl.
func (db *DB) GetStation(ctx context.Context, name string, ttl time.Duration) (*trafikverket.StationInfo, error) {
	var (
		signature   string
		stationName string
		advertised  sql.NullString
		resolvedAt  string
	)
	err := db.QueryRowContext(ctx,
		`SELECT signature, station_name, advertised, resolved_at FROM stations WHERE name_key = ?`,
		nameKey(name)).Scan(&signature, &stationName, &advertised, &resolvedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("station lookup: %w", err)
	}
	if expired(resolvedAt, ttl) {
		return nil, nil
	}

	info := &trafikverket.StationInfo{Signature: signature, Name: stationName}
	if advertised.Valid {
		info.Advertised = &advertised.String
	}
	return info, nil
}

// PutStation stores a station resolution under the given lookup name.
func (db *DB) PutStation(ctx context.Context, name string, station *trafikverket.StationInfo) error {
	var advertised sql.NullString
	if station.Advertised != nil {
		advertised = sql.NullString{String: *station.Advertised, Valid: true}
	}
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO stations (name_key, signature, station_name, advertised, resolved_at)
		 VALUES (?, ?, ?, ?, ?)`,
		nameKey(name), station.Signature, station.Name, advertised, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store station: %w", err)
	}
	return nil
}

// GetFerryRoute returns the cached resolution for a ferry route name, or nil
// when the name is unknown or the entry is older than ttl.
func (db *DB) GetFerryRoute(ctx context.Context, name string, ttl time.Duration) (*trafikverket.FerryRoute, error) {
	var (
		routeID    string
		routeName  string
		shortName  sql.NullString
		routeType  sql.NullString
		resolvedAt string
	)
	err := db.QueryRowContext(ctx,
		`SELECT route_id, route_name, short_name, route_type, resolved_at FROM ferry_routes WHERE name_key = ?`,
		nameKey(name)).Scan(&routeID, &routeName, &shortName, &routeType, &resolvedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ferry route lookup: %w", err)
	}
	if expired(resolvedAt, ttl) {
		return nil, nil
	}

	route := &trafikverket.FerryRoute{ID: routeID, Name: routeName}
	if shortName.Valid {
		route.ShortName = &shortName.String
	}
	if routeType.Valid {
		route.RouteType = &routeType.String
	}
	return route, nil
}

// PutFerryRoute stores a ferry route resolution under the given lookup name.
func (db *DB) PutFerryRoute(ctx context.Context, name string, route *trafikverket.FerryRoute) error {
	var shortName, routeType sql.NullString
	if route.ShortName != nil {
		shortName = sql.NullString{String: *route.ShortName, Valid: true}
	}
	if route.RouteType != nil {
		routeType = sql.NullString{String: *route.RouteType, Valid: true}
	}
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO ferry_routes (name_key, route_id, route_name, short_name, route_type, resolved_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		nameKey(name), route.ID, route.Name, shortName, routeType, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store ferry route: %w", err)
	}
	return nil
}

// GetMetadata retrieves a value from the metadata table. A missing key is an
// empty string.
func (db *DB) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetMetadata stores a key-value pair in the metadata table.
func (db *DB) SetMetadata(ctx context.Context, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)`,
		key, value)
	return err
}

// expired reports whether a stored RFC 3339 timestamp is older than ttl. An
// unparseable timestamp counts as expired. A zero ttl means entries never
// expire.
func expired(resolvedAt string, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	t, err := time.Parse(time.RFC3339, resolvedAt)
	if err != nil {
		return true
	}
	return time.Since(t) > ttl
}
