package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gaibarra/motel1/internal/api"
	"github.com/gaibarra/motel1/internal/apierror"
	"github.com/gaibarra/motel1/internal/dto"
	"github.com/gaibarra/motel1/internal/model"
)

// TurnService is the cash-turn ledger. The one-active-turn invariant lives in
// the backend, so every operation that depends on turn presence or balance
// re-queries the authoritative endpoints instead of trusting local state.
type TurnService struct {
	api *api.Client
	now func() time.Time
}

func NewTurnService(client *api.Client) *TurnService {
	return &TurnService{api: client, now: time.Now}
}

// Current returns the open turn, or nil when none is active.
func (s *TurnService) Current(ctx context.Context) (*model.TurnCash, error) {
	turn, err := s.api.CurrentTurn(ctx)
	if err != nil {
		var nf *apierror.NotFoundError
		if errors.As(err, &nf) {
			return nil, nil // expected empty state
		}
		return nil, err
	}
	return turn, nil
}

// Open starts a new turn. Fails with ConflictError when a turn is already
// active — checked against the backend, never a cached value, since other
// clients open turns too.
func (s *TurnService) Open(ctx context.Context, employeeID int, amount decimal.Decimal, description string) (*model.TurnCash, error) {
	req := dto.OpenTurnRequest{
		Employee:        employeeID,
		TurnTime:        s.now(),
		TurnAmount:      amount,
		TurnDescription: description,
	}
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	active, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, &apierror.ConflictError{Detail: "ya existe un turno de caja activo"}
	}

	turn, err := s.api.OpenTurn(ctx, req)
	if err != nil {
		return nil, err
	}
	log.Info().Int("turn", turn.ID).Int("employee", employeeID).Msg("turn: opened")
	return turn, nil
}

// Balance returns the turn's authoritative balance:
// opening amount + Σ entradas − Σ salidas.
func (s *TurnService) Balance(ctx context.Context, turnID int) (decimal.Decimal, error) {
	bal, err := s.api.CurrentBalance(ctx, turnID)
	if err != nil {
		return decimal.Zero, err
	}
	return bal.Balance, nil
}

// RecordMovement appends a cash movement to the turn. A salida is checked
// against a freshly fetched balance and rejected with
// InsufficientBalanceError before submission, so the ledger is never mutated
// by an overdraft attempt.
func (s *TurnService) RecordMovement(ctx context.Context, turnID int, movementType model.MovementType, amount decimal.Decimal, concept string) (*model.CashMovement, error) {
	req := dto.MovementRequest{
		TurnCash:     turnID,
		MovementType: movementType,
		Amount:       amount,
		Concept:      concept,
	}
	if err := checkStruct(req); err != nil {
		return nil, err
	}

	if movementType == model.MovementSalida {
		balance, err := s.Balance(ctx, turnID)
		if err != nil {
			return nil, err
		}
		if amount.GreaterThan(balance) {
			return nil, &apierror.InsufficientBalanceError{Balance: balance, Requested: amount}
		}
	}

	mov, err := s.api.CreateMovement(ctx, req)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("turn", turnID).
		Str("type", string(movementType)).
		Str("amount", amount.StringFixed(2)).
		Msg("turn: movement recorded")
	return mov, nil
}

// Movements lists the open turn's movements in chronological order. An empty
// list is returned when no turn is active.
func (s *TurnService) Movements(ctx context.Context) ([]model.CashMovement, error) {
	movements, err := s.api.CurrentTurnMovements(ctx)
	if err != nil {
		var nf *apierror.NotFoundError
		if errors.As(err, &nf) {
			return nil, nil
		}
		return nil, err
	}
	sort.Slice(movements, func(i, j int) bool { return movements[i].Date.Before(movements[j].Date) })
	return movements, nil
}

// LastTurnReport returns the previous turn's summary, or nil when no turn has
// ever been opened. Used to pre-fill the next opening amount.
func (s *TurnService) LastTurnReport(ctx context.Context) (*dto.LastTurnReport, error) {
	report, err := s.api.LastTurnReport(ctx)
	if err != nil {
		var nf *apierror.NotFoundError
		if errors.As(err, &nf) {
			return nil, nil
		}
		return nil, err
	}
	return report, nil
}

// Employees returns the reference data used when picking a turn responsible.
func (s *TurnService) Employees(ctx context.Context) ([]model.Employee, error) {
	return s.api.ListEmployees(ctx)
}

// Employee resolves one employee, used to display the turn responsible.
func (s *TurnService) Employee(ctx context.Context, id int) (*model.Employee, error) {
	return s.api.GetEmployee(ctx, id)
}

// Close downloads the turn's report and treats the turn as closed. The
// backend exposes no further state for a closed turn; closure is one-way from
// the client's viewpoint.
func (s *TurnService) Close(ctx context.Context, turnID int) ([]byte, error) {
	blob, err := s.api.GenerateReport(ctx, turnID)
	if err != nil {
		return nil, err
	}
	log.Info().Int("turn", turnID).Int("report_bytes", len(blob)).Msg("turn: closed with report")
	return blob, nil
}
