package api

import (
	"context"
	"fmt"

	"github.com/gaibarra/motel1/internal/model"
)

// ListEmployees returns the employee reference data.
func (c *Client) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	resp, err := c.req(ctx).SetResult(&employees).Get("/employees/")
	if err := check("list employees", resp, err); err != nil {
		return nil, err
	}
	return employees, nil
}

// GetEmployee fetches one employee by id.
func (c *Client) GetEmployee(ctx context.Context, id int) (*model.Employee, error) {
	var employee model.Employee
	resp, err := c.req(ctx).SetResult(&employee).Get(fmt.Sprintf("/employees/%d/", id))
	if err := check("get employee", resp, err); err != nil {
		return nil, err
	}
	return &employee, nil
}
