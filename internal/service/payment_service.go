package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gaibarra/motel1/internal/api"
	"github.com/gaibarra/motel1/internal/apierror"
	"github.com/gaibarra/motel1/internal/model"
)

// PaymentService is the payment ledger. The backend exposes no date filter,
// so the full set is fetched once and day/month queries filter locally;
// edits and deletes update the held set in place so the aggregates stay
// consistent without a refetch.
type PaymentService struct {
	api *api.Client
	loc *time.Location

	mu       sync.Mutex
	payments []model.Payment
}

func NewPaymentService(client *api.Client, loc *time.Location) *PaymentService {
	if loc == nil {
		loc = time.Local
	}
	return &PaymentService{api: client, loc: loc}
}

// Refresh fetches the full payment set and annotates each record with its
// door number resolved from the room list.
func (s *PaymentService) Refresh(ctx context.Context) error {
	payments, err := s.api.ListPayments(ctx)
	if err != nil {
		return err
	}
	rooms, err := s.api.ListRooms(ctx)
	if err != nil {
		return err
	}
	numberByID := make(map[int]int, len(rooms))
	for _, r := range rooms {
		numberByID[r.ID] = r.Number
	}
	for i := range payments {
		payments[i].RoomNumber = numberByID[payments[i].Room]
	}

	s.mu.Lock()
	s.payments = payments
	s.mu.Unlock()

	log.Debug().Int("count", len(payments)).Msg("payments: refreshed")
	return nil
}

// PaymentsOnDate returns the payments whose payment_time falls inside
// [date 00:00:00, date 23:59:59.999…] in the configured local zone.
func (s *PaymentService) PaymentsOnDate(date time.Time) []model.Payment {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return s.filter(start, end)
}

// PaymentsInMonth returns the payments of the calendar month containing date.
func (s *PaymentService) PaymentsInMonth(date time.Time) []model.Payment {
	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return s.filter(start, end)
}

// DailyTotal sums payment_amount over the given day's payments.
func (s *PaymentService) DailyTotal(date time.Time) decimal.Decimal {
	return sumAmounts(s.PaymentsOnDate(date))
}

// MonthlyTotal sums payment_amount over the given month's payments.
func (s *PaymentService) MonthlyTotal(date time.Time) decimal.Decimal {
	return sumAmounts(s.PaymentsInMonth(date))
}

// EditAmount persists a new amount for a payment, then updates the held set
// in place. Daily and monthly totals computed afterwards reflect the edit
// without a full refetch.
func (s *PaymentService) EditAmount(ctx context.Context, paymentID int, newAmount decimal.Decimal) (*model.Payment, error) {
	if !newAmount.IsPositive() {
		return nil, apierror.NewValidation(map[string]string{"PaymentAmount": "gt=0"})
	}

	s.mu.Lock()
	var candidate *model.Payment
	for i := range s.payments {
		if s.payments[i].ID == paymentID {
			c := s.payments[i]
			candidate = &c
			break
		}
	}
	s.mu.Unlock()
	if candidate == nil {
		return nil, &apierror.NotFoundError{Resource: "pago"}
	}

	candidate.PaymentAmount = newAmount
	updated, err := s.api.UpdatePayment(ctx, *candidate)
	if err != nil {
		return nil, err // held set untouched
	}
	updated.RoomNumber = candidate.RoomNumber

	// Re-find by id: the set may have been refreshed or shrunk while the
	// lock was released around the PUT.
	s.mu.Lock()
	for i := range s.payments {
		if s.payments[i].ID == paymentID {
			s.payments[i] = *updated
			break
		}
	}
	s.mu.Unlock()

	log.Info().Int("payment", paymentID).Str("amount", newAmount.StringFixed(2)).Msg("payments: amount edited")
	return updated, nil
}

// Delete removes the payment remotely, then locally.
func (s *PaymentService) Delete(ctx context.Context, paymentID int) error {
	if err := s.api.DeletePayment(ctx, paymentID); err != nil {
		return err
	}

	s.mu.Lock()
	for i, p := range s.payments {
		if p.ID == paymentID {
			s.payments = append(s.payments[:i], s.payments[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	log.Info().Int("payment", paymentID).Msg("payments: deleted")
	return nil
}

func (s *PaymentService) filter(start, end time.Time) []model.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Payment
	for _, p := range s.payments {
		t := p.PaymentTime.In(s.loc)
		if !t.Before(start) && !t.After(end) {
			out = append(out, p)
		}
	}
	return out
}

func sumAmounts(payments []model.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.PaymentAmount)
	}
	return total
}
