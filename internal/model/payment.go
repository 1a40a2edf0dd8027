package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a rent payment tied to a room. Created by the backend whenever a
// room transitions into Occupied (new rent or renewal); the client only ever
// edits the amount or deletes the record.
type Payment struct {
	ID            int             `json:"id"`
	Room          int             `json:"room"` // room primary key, not the door number
	PaymentTime   time.Time       `json:"payment_time"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	VehicleInfo   string          `json:"vehicle_info"`
	RentDuration  int             `json:"rent_duration"` // hours

	// RoomNumber is resolved client-side from the room list; the backend
	// serializes only the foreign key.
	RoomNumber int `json:"room_number,omitempty"`
}
