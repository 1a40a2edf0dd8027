package api

import (
	"context"
	"fmt"

	"github.com/gaibarra/motel1/internal/dto"
	"github.com/gaibarra/motel1/internal/model"
)

// ListRooms returns every room. Ordering is applied by the caller.
func (c *Client) ListRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	resp, err := c.req(ctx).SetResult(&rooms).Get("/rooms/")
	if err := check("list rooms", resp, err); err != nil {
		return nil, err
	}
	return rooms, nil
}

// GetRoom fetches a single room by door number.
func (c *Client) GetRoom(ctx context.Context, number int) (*model.Room, error) {
	var room model.Room
	resp, err := c.req(ctx).SetResult(&room).Get(fmt.Sprintf("/rooms/%d/", number))
	if err := check("get room", resp, err); err != nil {
		return nil, err
	}
	return &room, nil
}

// UpdateRoom performs the status transition via PUT /rooms/{number}/. On a
// transition into Occupied the backend creates the Payment record and the cash
// movement as side effects and returns the updated room.
func (c *Client) UpdateRoom(ctx context.Context, number int, req dto.RoomUpdateRequest) (*model.Room, error) {
	var room model.Room
	resp, err := c.req(ctx).
		SetBody(req).
		SetResult(&room).
		Put(fmt.Sprintf("/rooms/%d/", number))
	if err := check("update room", resp, err); err != nil {
		return nil, err
	}
	return &room, nil
}

// OccupationWindow returns the server-computed start/expiry pair. Queried
// fresh on every call; the backend owns the time math.
func (c *Client) OccupationWindow(ctx context.Context, number int) (*dto.OccupationWindow, error) {
	var win dto.OccupationWindow
	resp, err := c.req(ctx).SetResult(&win).Get(fmt.Sprintf("/rooms/%d/occupation_time/", number))
	if err := check("occupation window", resp, err); err != nil {
		return nil, err
	}
	return &win, nil
}

// LastPaymentForRoom returns the room's most recent payment, used to carry the
// vehicle over on renewals.
func (c *Client) LastPaymentForRoom(ctx context.Context, number int) (*dto.LastPaymentResponse, error) {
	var last dto.LastPaymentResponse
	resp, err := c.req(ctx).SetResult(&last).Get(fmt.Sprintf("/rooms/%d/last_payment_for_room/", number))
	if err := check("last payment", resp, err); err != nil {
		return nil, err
	}
	return &last, nil
}

// LastVehicleInfo returns the vehicle registered on the room's most recent
// payment. The backend answers 200 with an empty string when the room has no
// payment history.
func (c *Client) LastVehicleInfo(ctx context.Context, number int) (string, error) {
	var resp dto.VehicleInfoResponse
	r, err := c.req(ctx).SetResult(&resp).Get(fmt.Sprintf("/rooms/%d/last_vehicle_info/", number))
	if err := check("last vehicle info", r, err); err != nil {
		return "", err
	}
	return resp.VehicleInfo, nil
}

// RenewalDetails returns the accumulated occupancy chain for a room/vehicle
// pair.
func (c *Client) RenewalDetails(ctx context.Context, number int, vehicleInfo string) (*dto.RenewalDetails, error) {
	var details dto.RenewalDetails
	resp, err := c.req(ctx).
		SetQueryParam("vehicle_info", vehicleInfo).
		SetResult(&details).
		Get(fmt.Sprintf("/rooms/%d/renewal_details/", number))
	if err := check("renewal details", resp, err); err != nil {
		return nil, err
	}
	return &details, nil
}
