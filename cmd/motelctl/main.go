// motelctl is the staff CLI over the motel backend: room status, cash turns,
// payments and reports. It is the composition root wiring config → transport
// → API bindings → domain services.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gaibarra/motel1/internal/api"
	"github.com/gaibarra/motel1/internal/config"
	"github.com/gaibarra/motel1/internal/dto"
	"github.com/gaibarra/motel1/internal/infra"
	"github.com/gaibarra/motel1/internal/model"
	"github.com/gaibarra/motel1/internal/service"
)

const usage = `motelctl <command>

  login <usuario> <password>        iniciar sesión
  logout                            cerrar sesión
  user                              datos del usuario autenticado
  rooms                             listar cuartos
  status <cuarto> <OC|CL|MT|AV|LI> [monto vehiculo horas]
  vehicle <cuarto>                  último vehículo registrado
  window <cuarto>                   ventana de ocupación
  employees                         listar empleados
  turn open <empleado> <monto> [descripción]
  turn current                      turno activo
  turn movements                    movimientos del turno activo
  turn last                         resumen del último turno
  turn close <turno>                cerrar turno y descargar reporte
  movement <entrada|salida> <monto> <concepto>
  payments <AAAA-MM-DD>             pagos del día y totales
  report <AAAA-MM-DD>               generar PDF del día
`

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	store := infra.NewFileStore(cfg.CredentialsPath)
	auth := service.NewAuthService(store, func() {
		fmt.Fprintln(os.Stderr, "La sesión expiró. Inicie sesión de nuevo con: motelctl login")
	})
	client := api.New(infra.NewRESTClient(cfg), auth)
	auth.Bind(client)

	rooms := service.NewRoomService(client)
	turns := service.NewTurnService(client)
	payments := service.NewPaymentService(client, cfg.Location())
	var mailer *infra.Mailer
	if cfg.SMTPHost != "" {
		mailer = infra.NewMailer(cfg)
	}
	reports := service.NewReportService(payments, turns, mailer, cfg.ReportDir, cfg.ReportEmailTo)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, cfg, auth, rooms, turns, payments, reports, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal().Err(err).Msg(os.Args[1])
	}
}

func run(ctx context.Context, cfg *config.Config, auth *service.AuthService, rooms *service.RoomService,
	turns *service.TurnService, payments *service.PaymentService, reports *service.ReportService,
	cmd string, args []string) error {

	// Rotate an expiring access token before touching any protected endpoint
	// so the command does not die mid-flight with a 401.
	if requiresSession(cmd) {
		if err := auth.EnsureFresh(ctx); err != nil {
			return err
		}
	}

	switch cmd {
	case "login":
		if len(args) != 2 {
			return fmt.Errorf("uso: motelctl login <usuario> <password>")
		}
		return auth.Login(ctx, args[0], args[1])

	case "logout":
		auth.Logout()
		return nil

	case "user":
		user, err := auth.UserData(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%d  %s  %s\n", user.ID, user.Username, user.Email)
		return nil

	case "rooms":
		list, err := rooms.ListRooms(ctx)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, r := range list {
			line := fmt.Sprintf("%3d  %-13s $%s", r.Number, r.Status.Description(), r.RentPrice.StringFixed(2))
			if r.Overdue(now) {
				line += "  VENCIDO"
			}
			fmt.Println(line)
		}
		return nil

	case "status":
		if len(args) < 2 {
			return fmt.Errorf("uso: motelctl status <cuarto> <estado> [monto vehiculo horas]")
		}
		number, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("cuarto inválido: %q", args[0])
		}
		newStatus := model.RoomStatus(strings.ToUpper(args[1]))
		var form dto.OccupancyForm
		if newStatus == model.StatusOccupied {
			if len(args) != 5 {
				return fmt.Errorf("ocupar requiere: monto vehiculo horas")
			}
			amount, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("monto inválido: %q", args[2])
			}
			hours, err := strconv.Atoi(args[4])
			if err != nil {
				return fmt.Errorf("horas inválidas: %q", args[4])
			}
			form = dto.OccupancyForm{PaymentAmount: amount, VehicleInfo: args[3], RentDuration: hours}
		}
		updated, err := rooms.SetStatus(ctx, number, newStatus, form)
		if err != nil {
			return err
		}
		fmt.Printf("Cuarto %d → %s\n", updated.Number, updated.Status.Description())
		return nil

	case "vehicle":
		if len(args) != 1 {
			return fmt.Errorf("uso: motelctl vehicle <cuarto>")
		}
		number, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("cuarto inválido: %q", args[0])
		}
		vehicle, err := rooms.LastVehicleInfo(ctx, number)
		if err != nil {
			return err
		}
		if vehicle == "" {
			fmt.Println("sin historial de vehículos")
			return nil
		}
		fmt.Println(vehicle)
		return nil

	case "window":
		if len(args) != 1 {
			return fmt.Errorf("uso: motelctl window <cuarto>")
		}
		number, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("cuarto inválido: %q", args[0])
		}
		win, err := rooms.OccupationWindow(ctx, number)
		if err != nil {
			return err
		}
		if win.OccupationTime == nil {
			fmt.Println("sin ocupación activa")
			return nil
		}
		fmt.Printf("%s — %s (%d horas)\n",
			win.OccupationTime.Format("15:04"), win.ExpiryTime.Format("15:04"), win.RentDuration)
		return nil

	case "employees":
		employees, err := turns.Employees(ctx)
		if err != nil {
			return err
		}
		for _, e := range employees {
			fmt.Printf("%3d  %-25s %s\n", e.ID, e.Name, e.Position)
		}
		return nil

	case "turn":
		return runTurn(ctx, turns, reports, args)

	case "movement":
		if len(args) < 3 {
			return fmt.Errorf("uso: motelctl movement <entrada|salida> <monto> <concepto>")
		}
		movementType := model.MovementType(args[0])
		if !movementType.Valid() {
			return fmt.Errorf("tipo de movimiento inválido: %q (entrada|salida)", args[0])
		}
		turn, err := turns.Current(ctx)
		if err != nil {
			return err
		}
		if turn == nil {
			return fmt.Errorf("no hay turno activo")
		}
		amount, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("monto inválido: %q", args[1])
		}
		mov, err := turns.RecordMovement(ctx, turn.ID, movementType, amount, strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("Movimiento %d registrado\n", mov.ID)
		return nil

	case "payments":
		if len(args) != 1 {
			return fmt.Errorf("uso: motelctl payments <AAAA-MM-DD>")
		}
		date, err := time.ParseInLocation("2006-01-02", args[0], cfg.Location())
		if err != nil {
			return fmt.Errorf("fecha inválida: %q", args[0])
		}
		if err := payments.Refresh(ctx); err != nil {
			return err
		}
		for _, p := range payments.PaymentsOnDate(date) {
			fmt.Printf("%5d  cuarto %3d  %s  $%s  %s\n",
				p.ID, p.RoomNumber, p.PaymentTime.In(cfg.Location()).Format("15:04"),
				p.PaymentAmount.StringFixed(2), p.VehicleInfo)
		}
		fmt.Printf("Total del día: $%s\n", payments.DailyTotal(date).StringFixed(2))
		fmt.Printf("Total del mes: $%s\n", payments.MonthlyTotal(date).StringFixed(2))
		return nil

	case "report":
		if len(args) != 1 {
			return fmt.Errorf("uso: motelctl report <AAAA-MM-DD>")
		}
		date, err := time.ParseInLocation("2006-01-02", args[0], cfg.Location())
		if err != nil {
			return fmt.Errorf("fecha inválida: %q", args[0])
		}
		path, err := reports.GenerateDailyReport(ctx, date)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("comando desconocido: %s", cmd)
	}
}

// requiresSession reports whether a command hits protected endpoints.
func requiresSession(cmd string) bool {
	switch cmd {
	case "user", "rooms", "status", "vehicle", "window", "employees", "turn", "movement", "payments", "report":
		return true
	}
	return false
}

func runTurn(ctx context.Context, turns *service.TurnService, reports *service.ReportService, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("uso: motelctl turn <open|current|movements|last|close>")
	}
	switch args[0] {
	case "open":
		if len(args) < 3 {
			return fmt.Errorf("uso: motelctl turn open <empleado> <monto> [descripción]")
		}
		employeeID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("empleado inválido: %q", args[1])
		}
		amount, err := decimal.NewFromString(args[2])
		if err != nil {
			return fmt.Errorf("monto inválido: %q", args[2])
		}
		turn, err := turns.Open(ctx, employeeID, amount, strings.Join(args[3:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("Turno %d abierto con $%s\n", turn.ID, turn.TurnAmount.StringFixed(2))
		return nil

	case "current":
		turn, err := turns.Current(ctx)
		if err != nil {
			return err
		}
		if turn == nil {
			fmt.Println("no hay turno activo")
			return nil
		}
		balance, err := turns.Balance(ctx, turn.ID)
		if err != nil {
			return err
		}
		responsible := ""
		if employee, err := turns.Employee(ctx, turn.Employee); err == nil {
			responsible = "  " + employee.Name
		}
		fmt.Printf("Turno %d%s  apertura $%s  saldo $%s\n",
			turn.ID, responsible, turn.TurnAmount.StringFixed(2), balance.StringFixed(2))
		return nil

	case "movements":
		movements, err := turns.Movements(ctx)
		if err != nil {
			return err
		}
		for _, m := range movements {
			fmt.Printf("%s  %-7s  $%s  %s\n",
				m.Date.Format("2006-01-02 15:04"), m.MovementType, m.Amount.StringFixed(2), m.Concept)
		}
		return nil

	case "last":
		report, err := turns.LastTurnReport(ctx)
		if err != nil {
			return err
		}
		if report == nil {
			fmt.Println("sin turnos previos")
			return nil
		}
		fmt.Printf("Turno %d  %s  apertura $%s  entradas $%s  salidas $%s  saldo $%s\n",
			report.ID, report.Employee.Name, report.TurnAmount.StringFixed(2),
			report.TotalEntradas.StringFixed(2), report.TotalSalidas.StringFixed(2),
			report.Saldo.StringFixed(2))
		return nil

	case "close":
		if len(args) != 2 {
			return fmt.Errorf("uso: motelctl turn close <turno>")
		}
		turnID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("turno inválido: %q", args[1])
		}
		path, err := reports.CloseTurn(ctx, turnID)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil

	default:
		return fmt.Errorf("subcomando desconocido: turn %s", args[0])
	}
}
