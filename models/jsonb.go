// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("error marshaling jsonb value: %w", err)
	}
	return string(b), nil
}

func jsonScan(src any, dst any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into jsonb", src)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("error unmarshaling jsonb value: %w", err)
	}
	return nil
}

// PointType is the only GeoJSON geometry used by tours.
const PointType = "Point"

// Point is a GeoJSON point with optional descriptive data. Coordinates are
// [longitude, latitude].
type Point struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
	Address     string    `json:"address,omitempty"`
	Description string    `json:"description,omitempty"`
	Day         int       `json:"day,omitempty"`
}

// Lng returns the longitude, or 0 when coordinates are missing.
func (p Point) Lng() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

// Lat returns the latitude, or 0 when coordinates are missing.
func (p Point) Lat() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// Value implements driver.Valuer.
func (p Point) Value() (driver.Value, error) {
	if p.Type == "" {
		p.Type = PointType
	}
	return jsonValue(p)
}

// Scan implements sql.Scanner.
func (p *Point) Scan(src any) error {
	return jsonScan(src, p)
}

// Points is a list of GeoJSON points stored as a jsonb array.
type Points []Point

// Value implements driver.Valuer.
func (ps Points) Value() (driver.Value, error) {
	if ps == nil {
		ps = Points{}
	}
	for i := range ps {
		if ps[i].Type == "" {
			ps[i].Type = PointType
		}
	}
	return jsonValue([]Point(ps))
}

// Scan implements sql.Scanner.
func (ps *Points) Scan(src any) error {
	return jsonScan(src, (*[]Point)(ps))
}

// Dates is a list of instants stored as a jsonb array of RFC 3339 strings.
type Dates []time.Time

// Value implements driver.Valuer.
func (d Dates) Value() (driver.Value, error) {
	if d == nil {
		d = Dates{}
	}
	return jsonValue([]time.Time(d))
}

// Scan implements sql.Scanner.
func (d *Dates) Scan(src any) error {
	return jsonScan(src, (*[]time.Time)(d))
}
