package domain

import "time"

type AssetStatus string

// Asset status vocabulary is stored verbatim in Firestore; existing data
// depends on these exact strings.
const (
	AssetStatusAvailable AssetStatus = "Available"
	AssetStatusOnLoan    AssetStatus = "On loan"
	AssetStatusInUse     AssetStatus = "In use"
	AssetStatusInRepair  AssetStatus = "In repair"
	AssetStatusRetired   AssetStatus = "Retired"
	AssetStatusActive    AssetStatus = "Active"
)

// ValidAssetStatus reports whether s is one of the known status values.
// An empty status is allowed; the admin form may leave it unset.
func ValidAssetStatus(s AssetStatus) bool {
	switch s {
	case "", AssetStatusAvailable, AssetStatusOnLoan, AssetStatusInUse,
		AssetStatusInRepair, AssetStatusRetired, AssetStatusActive:
		return true
	}
	return false
}

// Asset is an inventory record. The Firestore document key equals AssetID.
// DeviceID optionally links the asset to a deviceLocations document key.
type Asset struct {
	AssetID  string      `json:"asset_id" firestore:"assetId"`
	Name     string      `json:"name" firestore:"name"`
	Category string      `json:"category" firestore:"category"`
	Owner    string      `json:"owner" firestore:"owner"`
	Location string      `json:"location" firestore:"location"`
	Status   AssetStatus `json:"status" firestore:"status"`
	DeviceID string      `json:"device_id,omitempty" firestore:"deviceId"`
}

// TrackingState describes what the asset table shows for a linked device.
type TrackingState string

const (
	TrackingNotLinked TrackingState = "Not linked"
	TrackingNoSignal  TrackingState = "No signal"
	TrackingLive      TrackingState = "Live"
	TrackingLastSeen  TrackingState = "Last seen"
)

// AssetWithTracking is an asset row annotated with derived device presence.
type AssetWithTracking struct {
	Asset
	Tracking TrackingState `json:"tracking"`
	LastSeen *time.Time    `json:"last_seen,omitempty"`
}
