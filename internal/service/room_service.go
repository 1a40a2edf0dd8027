package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gaibarra/motel1/internal/api"
	"github.com/gaibarra/motel1/internal/apierror"
	"github.com/gaibarra/motel1/internal/dto"
	"github.com/gaibarra/motel1/internal/model"
)

// RoomService is the room registry: it caches the known rooms for display and
// drives status transitions. The cache is only ever updated from confirmed
// backend responses — a failed update leaves it untouched.
type RoomService struct {
	api *api.Client
	now func() time.Time

	mu    sync.Mutex
	rooms map[int]model.Room // keyed by door number
}

func NewRoomService(client *api.Client) *RoomService {
	return &RoomService{
		api:   client,
		now:   time.Now,
		rooms: make(map[int]model.Room),
	}
}

// ListRooms fetches the full room set, replaces the cache, and returns the
// rooms ascending by door number.
func (s *RoomService) ListRooms(ctx context.Context) ([]model.Room, error) {
	rooms, err := s.api.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })

	s.mu.Lock()
	s.rooms = make(map[int]model.Room, len(rooms))
	for _, r := range rooms {
		s.rooms[r.Number] = r
	}
	s.mu.Unlock()

	return rooms, nil
}

// CachedRooms returns the last confirmed room set, ascending by door number.
func (s *RoomService) CachedRooms() []model.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	rooms := make([]model.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Number < rooms[j].Number })
	return rooms
}

// CachedRoom returns the cached room for a door number, if known.
func (s *RoomService) CachedRoom(number int) (model.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[number]
	return r, ok
}

// SetStatus performs a room status transition.
//
// Occupied requires a complete occupancy form; when the room is already
// Occupied (renewal) the vehicle is carried over read-only from the last
// payment and total_hours accumulates. Cleaning stamps cleaning_start_time.
// Every other target status resets the occupancy form fields to defaults.
//
// The backend creates the Payment record (and its cash movement) on
// transitions into Occupied; the cache is updated only after the backend
// confirms the transition.
func (s *RoomService) SetStatus(ctx context.Context, number int, newStatus model.RoomStatus, form dto.OccupancyForm) (*model.Room, error) {
	if !newStatus.Valid() {
		return nil, apierror.NewValidation(map[string]string{"Status": "oneof=OC CL MT AV LI"})
	}

	current, ok := s.CachedRoom(number)
	if !ok {
		fetched, err := s.api.GetRoom(ctx, number)
		if err != nil {
			return nil, err
		}
		current = *fetched
	}

	req := dto.RoomUpdateRequest{
		Status:    newStatus,
		Number:    number,
		RentPrice: current.RentPrice,
	}

	switch newStatus {
	case model.StatusOccupied:
		renewal := current.Status == model.StatusOccupied
		if renewal {
			// The vehicle is carried over read-only, so only the amount and
			// duration are staff input here.
			fields := map[string]string{}
			if !form.PaymentAmount.IsPositive() {
				fields["PaymentAmount"] = "gt=0"
			}
			if form.RentDuration <= 0 {
				fields["RentDuration"] = "gt=0"
			}
			if len(fields) > 0 {
				return nil, apierror.NewValidation(fields)
			}
		} else if err := checkStruct(form); err != nil {
			return nil, err
		}
		if renewal {
			// Vehicle identity is carried over from the last payment; the
			// staff cannot change it on a renewal.
			last, err := s.api.LastPaymentForRoom(ctx, number)
			if err != nil {
				return nil, err
			}
			req.VehicleInfo = last.VehicleInfo
			req.TotalHours = current.TotalHours + form.RentDuration
		} else {
			req.VehicleInfo = form.VehicleInfo
			req.TotalHours = form.RentDuration // fresh occupancy chain
		}
		req.PaymentAmount = form.PaymentAmount
		req.RentDuration = form.RentDuration
		req.IsRenewal = renewal

	case model.StatusCleaning:
		t := s.now()
		req.CleaningStartTime = &t

	case model.StatusMaintenance, model.StatusAvailable, model.StatusClean:
		// Full form reset: occupancy fields go back to their defaults.

	default:
		return nil, apierror.NewValidation(map[string]string{"Status": "oneof=OC CL MT AV LI"})
	}

	updated, err := s.api.UpdateRoom(ctx, number, req)
	if err != nil {
		// No optimistic commit: the cached room is exactly as it was.
		return nil, err
	}

	s.mu.Lock()
	s.rooms[number] = *updated
	s.mu.Unlock()

	log.Info().
		Int("room", number).
		Str("status", string(newStatus)).
		Bool("renewal", req.IsRenewal).
		Msg("room: status updated")
	return updated, nil
}

// OccupationWindow returns the server-computed occupancy window, fresh on
// every call.
func (s *RoomService) OccupationWindow(ctx context.Context, number int) (*dto.OccupationWindow, error) {
	return s.api.OccupationWindow(ctx, number)
}

// LastVehicleInfo returns the vehicle of the room's most recent payment,
// used to pre-fill the occupancy form. Empty when the room has no history.
func (s *RoomService) LastVehicleInfo(ctx context.Context, number int) (string, error) {
	return s.api.LastVehicleInfo(ctx, number)
}

// RenewalDetails returns the accumulated chain for a room/vehicle pair.
func (s *RoomService) RenewalDetails(ctx context.Context, number int, vehicleInfo string) (*dto.RenewalDetails, error) {
	if vehicleInfo == "" {
		return nil, apierror.NewValidation(map[string]string{"VehicleInfo": "required"})
	}
	return s.api.RenewalDetails(ctx, number, vehicleInfo)
}
