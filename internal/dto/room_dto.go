package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gaibarra/motel1/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// OccupancyForm carries the staff-entered fields for a transition into
// Occupied. Field names match what the UI highlights on validation failure.
type OccupancyForm struct {
	PaymentAmount decimal.Decimal `json:"payment_amount" validate:"required,gt=0"`
	VehicleInfo   string          `json:"vehicle_info"   validate:"required"`
	RentDuration  int             `json:"rent_duration"  validate:"required,gt=0"`
}

// RoomUpdateRequest is the PUT /rooms/{number}/ payload. The backend reads the
// occupancy fields only on transitions into Occupied, where it also emits the
// Payment record.
type RoomUpdateRequest struct {
	Status            model.RoomStatus `json:"status"`
	Number            int              `json:"number"`
	RentPrice         decimal.Decimal  `json:"rent_price"`
	PaymentAmount     decimal.Decimal  `json:"payment_amount"`
	VehicleInfo       string           `json:"vehicle_info"`
	RentDuration      int              `json:"rent_duration"`
	TotalHours        int              `json:"total_hours"`
	IsRenewal         bool             `json:"is_renewal"`
	CleaningStartTime *time.Time       `json:"cleaning_start_time"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// OccupationWindow is the server-computed start/expiry pair for a room's
// current rental. All fields are null when the room is not occupied.
type OccupationWindow struct {
	OccupationTime *time.Time `json:"occupation_time"`
	ExpiryTime     *time.Time `json:"expiry_time"`
	VehicleInfo    *string    `json:"vehicle_info"`
	RentDuration   int        `json:"rent_duration"`
}

// VehicleInfoResponse carries the vehicle of a room's most recent payment;
// empty when the room has no payment history.
type VehicleInfoResponse struct {
	VehicleInfo string `json:"vehicle_info"`
}

type LastPaymentResponse struct {
	VehicleInfo   string          `json:"vehicle_info"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
}

type RenewalDetails struct {
	OccupationTime time.Time `json:"occupation_time"`
	ExpiryTime     time.Time `json:"expiry_time"`
	TotalHours     int       `json:"total_hours"`
}
