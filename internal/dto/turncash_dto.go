package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gaibarra/motel1/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenTurnRequest struct {
	Employee        int             `json:"employee"         validate:"required,min=1"`
	TurnTime        time.Time       `json:"turn_time"`
	TurnAmount      decimal.Decimal `json:"turn_amount"      validate:"min=0"`
	TurnDescription string          `json:"turn_description"`
}

type MovementRequest struct {
	TurnCash     int                `json:"turn_cash"     validate:"required,min=1"`
	MovementType model.MovementType `json:"movement_type" validate:"required,oneof=entrada salida"`
	Amount       decimal.Decimal    `json:"amount"        validate:"required,gt=0"`
	Concept      string             `json:"concept"       validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// LastTurnReport summarizes the most recent turn, open or closed. The next
// turn's opening amount is pre-filled from Saldo.
type LastTurnReport struct {
	ID              int                  `json:"id"`
	Employee        model.Employee       `json:"employee"`
	TurnAmount      decimal.Decimal      `json:"turn_amount"`
	TotalEntradas   decimal.Decimal      `json:"total_entradas"`
	TotalSalidas    decimal.Decimal      `json:"total_salidas"`
	Saldo           decimal.Decimal      `json:"saldo"`
	TurnDescription string               `json:"turn_description"`
	TurnTime        time.Time            `json:"turn_time"`
	Movements       []model.CashMovement `json:"movements"`
}
