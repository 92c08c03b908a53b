package models

import "time"

// Setting is a single site-settings entry. Value holds any BSON-serializable
// scalar or structured value; the driver preserves its type on round trip.
type Setting struct {
	Key       string      `json:"key" bson:"key"`
	Value     interface{} `json:"value" bson:"value"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}
