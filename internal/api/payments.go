package api

import (
	"context"
	"fmt"

	"github.com/gaibarra/motel1/internal/model"
)

// ListPayments returns the full payment set. The backend exposes no date
// filter, so callers filter locally.
func (c *Client) ListPayments(ctx context.Context) ([]model.Payment, error) {
	var payments []model.Payment
	resp, err := c.req(ctx).SetResult(&payments).Get("/payments/")
	if err := check("list payments", resp, err); err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdatePayment persists an edited payment via PUT /payments/{id}/.
func (c *Client) UpdatePayment(ctx context.Context, p model.Payment) (*model.Payment, error) {
	var updated model.Payment
	resp, err := c.req(ctx).
		SetBody(p).
		SetResult(&updated).
		Put(fmt.Sprintf("/payments/%d/", p.ID))
	if err := check("update payment", resp, err); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePayment removes a payment record.
func (c *Client) DeletePayment(ctx context.Context, id int) error {
	resp, err := c.req(ctx).Delete(fmt.Sprintf("/payments/%d/", id))
	return check("delete payment", resp, err)
}
