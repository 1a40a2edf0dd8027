package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomStatus is the two-letter status code used by the backend.
type RoomStatus string

const (
	StatusOccupied    RoomStatus = "OC"
	StatusCleaning    RoomStatus = "CL" // dirty, pending cleaning
	StatusMaintenance RoomStatus = "MT"
	StatusAvailable   RoomStatus = "AV"
	StatusClean       RoomStatus = "LI"
)

// Valid reports whether s is one of the five known codes.
func (s RoomStatus) Valid() bool {
	switch s {
	case StatusOccupied, StatusCleaning, StatusMaintenance, StatusAvailable, StatusClean:
		return true
	}
	return false
}

// Description is the staff-facing label shown next to each room.
func (s RoomStatus) Description() string {
	switch s {
	case StatusOccupied:
		return "Ocupado"
	case StatusCleaning:
		return "Sucio"
	case StatusMaintenance:
		return "Mantenimiento"
	case StatusAvailable:
		return "Disponible"
	case StatusClean:
		return "Limpio"
	default:
		return "Desconocido"
	}
}

// Room mirrors the backend's room resource. Timing fields are present only in
// the statuses that define them: occupation/expiry while Occupied,
// cleaning_start_time while Cleaning. TotalHours accumulates across a renewal
// chain and resets on a fresh occupation.
type Room struct {
	ID                int             `json:"id"`
	Number            int             `json:"number"`
	Status            RoomStatus      `json:"status"`
	RentPrice         decimal.Decimal `json:"rent_price"`
	OccupationTime    *time.Time      `json:"occupation_time"`
	DepartureTime     *time.Time      `json:"departure_time"`
	CleaningStartTime *time.Time      `json:"cleaning_start_time"`
	ExpiryTime        *time.Time      `json:"expiry_time"`
	TotalHours        int             `json:"total_hours"`
	IsRenewal         bool            `json:"is_renewal"`
}

// Overdue reports whether an occupied room's rental window has expired.
func (r *Room) Overdue(now time.Time) bool {
	return r.Status == StatusOccupied && r.ExpiryTime != nil && now.After(*r.ExpiryTime)
}
