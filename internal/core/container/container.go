package container

import (
	"database/sql"
	"os"

	auditQuery "github.com/BekaChkhiro/dealer-app-sub000/internal/auditlog"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/assets"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/boats"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/bookings"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/calculator"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/containers"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/core/logger"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/ledger"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/repository"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/tickets"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/transactions"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/users"
	"github.com/BekaChkhiro/dealer-app-sub000/internal/vehicles"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/auditlog"
	"github.com/BekaChkhiro/dealer-app-sub000/pkg/security"
)

type Container struct {
	Repository         *repository.Repository
	AuditRecorder      *auditlog.Recorder
	Ledger             *ledger.Service
	LoginHandler       *security.LoginHandler
	UserHandler        *users.UsersHandler
	VehicleHandler     *vehicles.VehiclesHandler
	TransactionHandler *transactions.TransactionsHandler
	BookingHandler     *bookings.BookingsHandler
	ContainerHandler   *containers.ContainersHandler
	BoatHandler        *boats.BoatsHandler
	TicketHandler      *tickets.TicketsHandler
	CalculatorHandler  *calculator.CalculatorHandler
	AuditLogHandler    *auditQuery.AuditLogHandler
}

func NewAppContainer(db *sql.DB) *Container {
	log := logger.NewLogger()
	repo := repository.NewRepository(db)

	auditStore := auditlog.NewRepository(repo)
	auditRecorder := auditlog.NewRecorder(auditStore, log)
	ledgerService := ledger.NewService(repo)

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	imageStore := assets.NewStore(uploadDir, log)

	userRepo := users.NewUserRepository(repo)
	vehicleRepo := vehicles.NewRepository(repo)
	transactionRepo := transactions.NewRepository(repo)
	bookingRepo := bookings.NewRepository(repo)
	containerRepo := containers.NewRepository(repo)
	boatRepo := boats.NewRepository(repo)
	ticketRepo := tickets.NewRepository(repo)
	calculatorRepo := calculator.NewRepository(repo)
	auditQueryRepo := auditQuery.NewQueryRepository(repo)

	return &Container{
		Repository:         repo,
		AuditRecorder:      auditRecorder,
		Ledger:             ledgerService,
		LoginHandler:       security.NewLoginHandler(repo),
		UserHandler:        users.NewHandler(userRepo, ledgerService, auditRecorder),
		VehicleHandler:     vehicles.NewHandler(vehicleRepo, auditRecorder, imageStore),
		TransactionHandler: transactions.NewHandler(transactionRepo, ledgerService, auditRecorder),
		BookingHandler:     bookings.NewHandler(bookingRepo, auditRecorder),
		ContainerHandler:   containers.NewHandler(containerRepo, auditRecorder),
		BoatHandler:        boats.NewHandler(boatRepo, auditRecorder),
		TicketHandler:      tickets.NewHandler(ticketRepo, auditRecorder),
		CalculatorHandler:  calculator.NewHandler(calculatorRepo, auditRecorder),
		AuditLogHandler:    auditQuery.NewHandler(auditQueryRepo),
	}
}
