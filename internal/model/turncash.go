package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType is the direction of a cash movement.
type MovementType string

const (
	MovementEntrada MovementType = "entrada"
	MovementSalida  MovementType = "salida"
)

func (t MovementType) Valid() bool {
	return t == MovementEntrada || t == MovementSalida
}

// TurnCash is a cash-register shift. At most one turn is open system-wide;
// the backend enforces that invariant, so the client always re-queries
// /turncash/current/ instead of trusting a cached value.
type TurnCash struct {
	ID              int             `json:"id"`
	Employee        int             `json:"employee"`
	TurnTime        time.Time       `json:"turn_time"`
	TurnAmount      decimal.Decimal `json:"turn_amount"` // opening balance
	TurnDescription string          `json:"turn_description"`
	IsClosed        bool            `json:"is_closed"`
}

// CashMovement is an append-only entry against an open turn. Never edited or
// deleted; corrections are new inverse entries.
type CashMovement struct {
	ID           int             `json:"id"`
	TurnCash     int             `json:"turn_cash"`
	MovementType MovementType    `json:"movement_type"`
	Concept      string          `json:"concept"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
}
