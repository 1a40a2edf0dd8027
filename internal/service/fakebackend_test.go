package service

// fakebackend_test.go — in-process double of the motel backend. It mirrors the
// server-side contracts the services depend on: payment and cash-movement
// side effects on occupation, the one-active-turn invariant, 404 for expected
// empty states, and bearer-protected endpoints. Tests drive the real api and
// service layers over HTTP against this double.

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/gaibarra/motel1/internal/api"
	"github.com/gaibarra/motel1/internal/dto"
	"github.com/gaibarra/motel1/internal/model"
)

const (
	fakeUser     = "recepcion"
	fakePassword = "clave123"
	fakeAccess   = "fake-access-token"
	fakeRefresh  = "fake-refresh-token"
)

type fakeBackend struct {
	srv *httptest.Server

	mu        sync.Mutex
	rooms     map[int]model.Room // keyed by door number
	payments  []model.Payment
	turns     []model.TurnCash
	movements []model.CashMovement
	employees []model.Employee
	nextID    int

	// calls counts handled requests per "METHOD route-pattern".
	calls map[string]int
	// failures forces a status code per "METHOD route-pattern" until cleared.
	failures map[string]int
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ft := &fakeBackend{
		rooms:    make(map[int]model.Room),
		nextID:   1000,
		calls:    make(map[string]int),
		failures: make(map[string]int),
		employees: []model.Employee{
			{ID: 1, Name: "Laura Mendez", Position: "AD", DateHired: "2022-03-01"},
			{ID: 2, Name: "Pedro Solis", Position: "CL", DateHired: "2023-07-15"},
		},
	}

	r := gin.New()
	r.Use(ft.track())

	r.POST("/token/", ft.handleToken)
	r.POST("/token/refresh/", ft.handleRefresh)
	r.GET("/auth/user/", ft.handleUser)

	r.GET("/rooms/", ft.handleListRooms)
	r.GET("/rooms/:number/", ft.handleGetRoom)
	r.PUT("/rooms/:number/", ft.handleUpdateRoom)
	r.GET("/rooms/:number/occupation_time/", ft.handleOccupationWindow)
	r.GET("/rooms/:number/last_payment_for_room/", ft.handleLastPayment)
	r.GET("/rooms/:number/last_vehicle_info/", ft.handleLastVehicleInfo)
	r.GET("/rooms/:number/renewal_details/", ft.handleRenewalDetails)

	r.GET("/payments/", ft.handleListPayments)
	r.PUT("/payments/:id/", ft.handleUpdatePayment)
	r.DELETE("/payments/:id/", ft.handleDeletePayment)

	r.GET("/turncash/current/", ft.handleCurrentTurn)
	r.POST("/turncash/", ft.handleOpenTurn)
	r.GET("/turncash/last_turn_report/", ft.handleLastTurnReport)
	r.GET("/turncash/current_turn_movements/", ft.handleCurrentMovements)
	r.GET("/turncash/:id/current_balance/", ft.handleBalance)
	r.GET("/turncash/:id/generate_report/", ft.handleGenerateReport)
	r.POST("/cashmovements/", ft.handleCreateMovement)

	r.GET("/employees/", ft.handleListEmployees)
	r.GET("/employees/:id/", ft.handleGetEmployee)

	ft.srv = httptest.NewServer(r)
	t.Cleanup(ft.srv.Close)
	return ft
}

// client builds a real api.Client pointed at the fake backend.
func (ft *fakeBackend) client(tokens api.TokenSource) *api.Client {
	rc := resty.New().
		SetBaseURL(ft.srv.URL).
		SetTimeout(5 * time.Second).
		SetHeader("Content-Type", "application/json")
	return api.New(rc, tokens)
}

// track counts calls and applies forced failures. Route patterns keep the
// counters stable across door numbers and ids.
func (ft *fakeBackend) track() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + " " + c.FullPath()
		ft.mu.Lock()
		ft.calls[key]++
		status := ft.failures[key]
		ft.mu.Unlock()
		if status != 0 {
			c.AbortWithStatusJSON(status, gin.H{"detail": "fallo forzado"})
			return
		}
		c.Next()
	}
}

func (ft *fakeBackend) callCount(key string) int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return ft.calls[key]
}

func (ft *fakeBackend) failWith(key string, status int) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.failures[key] = status
}

func (ft *fakeBackend) clearFailure(key string) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	delete(ft.failures, key)
}

func (ft *fakeBackend) nextIDLocked() int {
	ft.nextID++
	return ft.nextID
}

// ─── seeding helpers ─────────────────────────────────────────────────────────

func (ft *fakeBackend) seedRoom(number int, status model.RoomStatus, rentPrice string) model.Room {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	room := model.Room{
		ID:        ft.nextIDLocked(),
		Number:    number,
		Status:    status,
		RentPrice: decimal.RequireFromString(rentPrice),
	}
	ft.rooms[number] = room
	return room
}

func (ft *fakeBackend) seedPayment(roomID int, when time.Time, amount, vehicle string, hours int) model.Payment {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	p := model.Payment{
		ID:            ft.nextIDLocked(),
		Room:          roomID,
		PaymentTime:   when,
		PaymentAmount: decimal.RequireFromString(amount),
		VehicleInfo:   vehicle,
		RentDuration:  hours,
	}
	ft.payments = append(ft.payments, p)
	return p
}

func (ft *fakeBackend) paymentCount() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return len(ft.payments)
}

func (ft *fakeBackend) lastPayment() model.Payment {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return ft.payments[len(ft.payments)-1]
}

func (ft *fakeBackend) movementCount() int {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	return len(ft.movements)
}

func (ft *fakeBackend) openTurnLocked() *model.TurnCash {
	for i := range ft.turns {
		if !ft.turns[i].IsClosed {
			return &ft.turns[i]
		}
	}
	return nil
}

func (ft *fakeBackend) balanceLocked(turnID int) decimal.Decimal {
	var turn *model.TurnCash
	for i := range ft.turns {
		if ft.turns[i].ID == turnID {
			turn = &ft.turns[i]
			break
		}
	}
	if turn == nil {
		return decimal.Zero
	}
	balance := turn.TurnAmount
	for _, m := range ft.movements {
		if m.TurnCash != turnID {
			continue
		}
		if m.MovementType == model.MovementEntrada {
			balance = balance.Add(m.Amount)
		} else {
			balance = balance.Sub(m.Amount)
		}
	}
	return balance
}

// ─── auth handlers ───────────────────────────────────────────────────────────

func (ft *fakeBackend) handleToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "cuerpo invalido"})
		return
	}
	if req.Username != fakeUser || req.Password != fakePassword {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "credenciales invalidas"})
		return
	}
	c.JSON(http.StatusOK, dto.TokenPair{Access: fakeAccess, Refresh: fakeRefresh})
}

func (ft *fakeBackend) handleRefresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh != fakeRefresh {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "refresh token invalido"})
		return
	}
	c.JSON(http.StatusOK, dto.TokenPair{Access: fakeAccess + "-rotated"})
}

func (ft *fakeBackend) handleUser(c *gin.Context) {
	auth := c.GetHeader("Authorization")
	if auth != "Bearer "+fakeAccess && auth != "Bearer "+fakeAccess+"-rotated" {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "token invalido"})
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{ID: 7, Username: fakeUser, Email: "recepcion@motel1.click"})
}

// ─── room handlers ───────────────────────────────────────────────────────────

func (ft *fakeBackend) roomByNumber(c *gin.Context) (model.Room, bool) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "numero invalido"})
		return model.Room{}, false
	}
	ft.mu.Lock()
	room, ok := ft.rooms[number]
	ft.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "habitacion no encontrada"})
		return model.Room{}, false
	}
	return room, true
}

func (ft *fakeBackend) handleListRooms(c *gin.Context) {
	ft.mu.Lock()
	rooms := make([]model.Room, 0, len(ft.rooms))
	for _, r := range ft.rooms {
		rooms = append(rooms, r)
	}
	ft.mu.Unlock()
	c.JSON(http.StatusOK, rooms)
}

func (ft *fakeBackend) handleGetRoom(c *gin.Context) {
	room, ok := ft.roomByNumber(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, room)
}

// handleUpdateRoom reproduces the backend's transition side effects: on a
// transition into Occupied it stamps the occupancy window, records the
// payment, and books an entrada against the open turn.
func (ft *fakeBackend) handleUpdateRoom(c *gin.Context) {
	room, ok := ft.roomByNumber(c)
	if !ok {
		return
	}
	var req dto.RoomUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "cuerpo invalido"})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "estado invalido"})
		return
	}

	now := time.Now()
	ft.mu.Lock()
	defer ft.mu.Unlock()

	switch req.Status {
	case model.StatusOccupied:
		if req.IsRenewal && room.ExpiryTime != nil {
			expiry := room.ExpiryTime.Add(time.Duration(req.RentDuration) * time.Hour)
			room.ExpiryTime = &expiry
		} else {
			start := now
			expiry := now.Add(time.Duration(req.RentDuration) * time.Hour)
			room.OccupationTime = &start
			room.ExpiryTime = &expiry
		}
		room.TotalHours = req.TotalHours
		room.IsRenewal = req.IsRenewal
		room.CleaningStartTime = nil
		room.DepartureTime = nil

		payment := model.Payment{
			ID:            ft.nextIDLocked(),
			Room:          room.ID,
			PaymentTime:   now,
			PaymentAmount: req.PaymentAmount,
			VehicleInfo:   req.VehicleInfo,
			RentDuration:  req.RentDuration,
		}
		ft.payments = append(ft.payments, payment)

		if turn := ft.openTurnLocked(); turn != nil {
			ft.movements = append(ft.movements, model.CashMovement{
				ID:           ft.nextIDLocked(),
				TurnCash:     turn.ID,
				MovementType: model.MovementEntrada,
				Concept:      fmt.Sprintf("Renta habitacion %d", room.Number),
				Amount:       req.PaymentAmount,
				Date:         now,
			})
		}

	case model.StatusCleaning:
		room.CleaningStartTime = req.CleaningStartTime
		departure := now
		room.DepartureTime = &departure
		room.OccupationTime = nil
		room.ExpiryTime = nil
		room.TotalHours = 0
		room.IsRenewal = false

	default:
		room.OccupationTime = nil
		room.DepartureTime = nil
		room.CleaningStartTime = nil
		room.ExpiryTime = nil
		room.TotalHours = 0
		room.IsRenewal = false
	}

	room.Status = req.Status
	ft.rooms[room.Number] = room
	c.JSON(http.StatusOK, room)
}

func (ft *fakeBackend) handleOccupationWindow(c *gin.Context) {
	room, ok := ft.roomByNumber(c)
	if !ok {
		return
	}
	win := dto.OccupationWindow{
		OccupationTime: room.OccupationTime,
		ExpiryTime:     room.ExpiryTime,
	}
	c.JSON(http.StatusOK, win)
}

func (ft *fakeBackend) handleLastPayment(c *gin.Context) {
	room, ok := ft.roomByNumber(c)
	if !ok {
		return
	}
	ft.mu.Lock()
	defer ft.mu.Unlock()
	for i := len(ft.payments) - 1; i >= 0; i-- {
		if ft.payments[i].Room == room.ID {
			c.JSON(http.StatusOK, dto.LastPaymentResponse{
				VehicleInfo:   ft.payments[i].VehicleInfo,
				PaymentAmount: ft.payments[i].PaymentAmount,
			})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "sin pagos para la habitacion"})
}

// handleLastVehicleInfo answers 200 with an empty string when the room has no
// payment history, matching the real endpoint.
func (ft *fakeBackend) handleLastVehicleInfo(c *gin.Context) {
	room, ok := ft.roomByNumber(c)
	if !ok {
		return
	}
	ft.mu.Lock()
	defer ft.mu.Unlock()
	for i := len(ft.payments) - 1; i >= 0; i-- {
		if ft.payments[i].Room == room.ID {
			c.JSON(http.StatusOK, dto.VehicleInfoResponse{VehicleInfo: ft.payments[i].VehicleInfo})
			return
		}
	}
	c.JSON(http.StatusOK, dto.VehicleInfoResponse{})
}

func (ft *fakeBackend) handleRenewalDetails(c *gin.Context) {
	room, ok := ft.roomByNumber(c)
	if !ok {
		return
	}
	if room.OccupationTime == nil || room.ExpiryTime == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "habitacion no ocupada"})
		return
	}
	c.JSON(http.StatusOK, dto.RenewalDetails{
		OccupationTime: *room.OccupationTime,
		ExpiryTime:     *room.ExpiryTime,
		TotalHours:     room.TotalHours,
	})
}

// ─── payment handlers ────────────────────────────────────────────────────────

func (ft *fakeBackend) handleListPayments(c *gin.Context) {
	ft.mu.Lock()
	payments := make([]model.Payment, len(ft.payments))
	copy(payments, ft.payments)
	ft.mu.Unlock()
	c.JSON(http.StatusOK, payments)
}

func (ft *fakeBackend) handleUpdatePayment(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	var req model.Payment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "cuerpo invalido"})
		return
	}
	ft.mu.Lock()
	defer ft.mu.Unlock()
	for i := range ft.payments {
		if ft.payments[i].ID == id {
			ft.payments[i].PaymentAmount = req.PaymentAmount
			c.JSON(http.StatusOK, ft.payments[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "pago no encontrado"})
}

func (ft *fakeBackend) handleDeletePayment(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	ft.mu.Lock()
	defer ft.mu.Unlock()
	for i := range ft.payments {
		if ft.payments[i].ID == id {
			ft.payments = append(ft.payments[:i], ft.payments[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "pago no encontrado"})
}

// ─── turn handlers ───────────────────────────────────────────────────────────

func (ft *fakeBackend) handleCurrentTurn(c *gin.Context) {
	ft.mu.Lock()
	turn := ft.openTurnLocked()
	ft.mu.Unlock()
	if turn == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "no hay turno activo"})
		return
	}
	c.JSON(http.StatusOK, turn)
}

func (ft *fakeBackend) handleOpenTurn(c *gin.Context) {
	var req dto.OpenTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "cuerpo invalido"})
		return
	}
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if ft.openTurnLocked() != nil {
		c.JSON(http.StatusConflict, gin.H{"detail": "ya existe un turno activo"})
		return
	}
	turn := model.TurnCash{
		ID:              ft.nextIDLocked(),
		Employee:        req.Employee,
		TurnTime:        req.TurnTime,
		TurnAmount:      req.TurnAmount,
		TurnDescription: req.TurnDescription,
	}
	ft.turns = append(ft.turns, turn)
	c.JSON(http.StatusCreated, turn)
}

func (ft *fakeBackend) handleLastTurnReport(c *gin.Context) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if len(ft.turns) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "sin turnos previos"})
		return
	}
	turn := ft.turns[len(ft.turns)-1]
	totalIn, totalOut := decimal.Zero, decimal.Zero
	var movs []model.CashMovement
	for _, m := range ft.movements {
		if m.TurnCash != turn.ID {
			continue
		}
		movs = append(movs, m)
		if m.MovementType == model.MovementEntrada {
			totalIn = totalIn.Add(m.Amount)
		} else {
			totalOut = totalOut.Add(m.Amount)
		}
	}
	c.JSON(http.StatusOK, dto.LastTurnReport{
		ID:              turn.ID,
		TurnAmount:      turn.TurnAmount,
		TotalEntradas:   totalIn,
		TotalSalidas:    totalOut,
		Saldo:           turn.TurnAmount.Add(totalIn).Sub(totalOut),
		TurnDescription: turn.TurnDescription,
		TurnTime:        turn.TurnTime,
		Movements:       movs,
	})
}

func (ft *fakeBackend) handleCurrentMovements(c *gin.Context) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	turn := ft.openTurnLocked()
	if turn == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "no hay turno activo"})
		return
	}
	var movs []model.CashMovement
	for _, m := range ft.movements {
		if m.TurnCash == turn.ID {
			movs = append(movs, m)
		}
	}
	c.JSON(http.StatusOK, movs)
}

func (ft *fakeBackend) handleBalance(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	ft.mu.Lock()
	balance := ft.balanceLocked(id)
	ft.mu.Unlock()
	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

func (ft *fakeBackend) handleGenerateReport(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	ft.mu.Lock()
	for i := range ft.turns {
		if ft.turns[i].ID == id {
			ft.turns[i].IsClosed = true
		}
	}
	ft.mu.Unlock()
	c.Data(http.StatusOK, "application/pdf", []byte("%PDF-1.4 reporte de turno "+strconv.Itoa(id)))
}

func (ft *fakeBackend) handleCreateMovement(c *gin.Context) {
	var req dto.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "cuerpo invalido"})
		return
	}
	ft.mu.Lock()
	defer ft.mu.Unlock()
	mov := model.CashMovement{
		ID:           ft.nextIDLocked(),
		TurnCash:     req.TurnCash,
		MovementType: req.MovementType,
		Concept:      req.Concept,
		Amount:       req.Amount,
		Date:         time.Now(),
	}
	ft.movements = append(ft.movements, mov)
	c.JSON(http.StatusCreated, mov)
}

// ─── employee handlers ───────────────────────────────────────────────────────

func (ft *fakeBackend) handleListEmployees(c *gin.Context) {
	ft.mu.Lock()
	employees := make([]model.Employee, len(ft.employees))
	copy(employees, ft.employees)
	ft.mu.Unlock()
	c.JSON(http.StatusOK, employees)
}

func (ft *fakeBackend) handleGetEmployee(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	ft.mu.Lock()
	defer ft.mu.Unlock()
	for _, e := range ft.employees {
		if e.ID == id {
			c.JSON(http.StatusOK, e)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "empleado no encontrado"})
}
