package api

import (
	"context"
	"fmt"

	"github.com/gaibarra/motel1/internal/dto"
	"github.com/gaibarra/motel1/internal/model"
)

// CurrentTurn returns the open turn. A 404 surfaces as NotFoundError, which
// callers treat as "no active turn", not a failure.
func (c *Client) CurrentTurn(ctx context.Context) (*model.TurnCash, error) {
	var turn model.TurnCash
	resp, err := c.req(ctx).SetResult(&turn).Get("/turncash/current/")
	if err := check("current turn", resp, err); err != nil {
		return nil, err
	}
	return &turn, nil
}

// OpenTurn creates a new cash turn via POST /turncash/.
func (c *Client) OpenTurn(ctx context.Context, req dto.OpenTurnRequest) (*model.TurnCash, error) {
	var turn model.TurnCash
	resp, err := c.req(ctx).SetBody(req).SetResult(&turn).Post("/turncash/")
	if err := check("open turn", resp, err); err != nil {
		return nil, err
	}
	return &turn, nil
}

// LastTurnReport returns the summary of the most recent turn. 404 means no
// turn has ever been opened.
func (c *Client) LastTurnReport(ctx context.Context) (*dto.LastTurnReport, error) {
	var report dto.LastTurnReport
	resp, err := c.req(ctx).SetResult(&report).Get("/turncash/last_turn_report/")
	if err := check("last turn report", resp, err); err != nil {
		return nil, err
	}
	return &report, nil
}

// CurrentBalance fetches the authoritative balance for a turn:
// opening amount + entradas − salidas, computed server-side.
func (c *Client) CurrentBalance(ctx context.Context, turnID int) (*dto.BalanceResponse, error) {
	var bal dto.BalanceResponse
	resp, err := c.req(ctx).SetResult(&bal).Get(fmt.Sprintf("/turncash/%d/current_balance/", turnID))
	if err := check("current balance", resp, err); err != nil {
		return nil, err
	}
	return &bal, nil
}

// GenerateReport downloads the turn's PDF report as an opaque byte blob.
func (c *Client) GenerateReport(ctx context.Context, turnID int) ([]byte, error) {
	resp, err := c.req(ctx).Get(fmt.Sprintf("/turncash/%d/generate_report/", turnID))
	if err := check("generate report", resp, err); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// CurrentTurnMovements lists the open turn's movements in the backend's
// insertion order.
func (c *Client) CurrentTurnMovements(ctx context.Context) ([]model.CashMovement, error) {
	var movements []model.CashMovement
	resp, err := c.req(ctx).SetResult(&movements).Get("/turncash/current_turn_movements/")
	if err := check("current turn movements", resp, err); err != nil {
		return nil, err
	}
	return movements, nil
}

// CreateMovement appends a cash movement. The backend ties it to the open
// turn.
func (c *Client) CreateMovement(ctx context.Context, req dto.MovementRequest) (*model.CashMovement, error) {
	var mov model.CashMovement
	resp, err := c.req(ctx).SetBody(req).SetResult(&mov).Post("/cashmovements/")
	if err := check("create movement", resp, err); err != nil {
		return nil, err
	}
	return &mov, nil
}
