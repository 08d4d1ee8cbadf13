package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vetclinic-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/vetclinic-report-api/infrastructure/repository"
	"github.com/vfg2006/vetclinic-report-api/internal/api"
	"github.com/vfg2006/vetclinic-report-api/internal/config"
	"github.com/vfg2006/vetclinic-report-api/internal/scheduler"
	"github.com/vfg2006/vetclinic-report-api/internal/usecases/authenticating"
	"github.com/vfg2006/vetclinic-report-api/internal/usecases/reporting"
	"github.com/vfg2006/vetclinic-report-api/pkg/log"
	"github.com/vfg2006/vetclinic-report-api/pkg/middleware"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Inicializa configuração de logs
	log.Setup(cfg.App.LogLevel)

	// Valores monetários saem como número no JSON
	decimal.MarshalJSONWithoutQuotes = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	clinicRepo := repository.NewClinicRepository(pgConn)
	snapshotRepo := repository.NewReportSnapshotRepository(pgConn)

	reportService := reporting.NewService(cfg, reporting.Repositories{
		Appointments:  repository.NewAppointmentRepository(pgConn),
		Consultations: repository.NewConsultationRepository(pgConn),
		Prescriptions: repository.NewPrescriptionRepository(pgConn),
		Pets:          repository.NewPetRepository(pgConn),
		Guardians:     repository.NewGuardianRepository(pgConn),
		Inventory:     repository.NewInventoryRepository(pgConn),
		Payments:      repository.NewPaymentRepository(pgConn),
		Veterinarians: repository.NewVeterinarianRepository(pgConn),
		Snapshots:     snapshotRepo,
	})

	authenticator := authenticating.NewService(userRepo, cfg)

	// Inicializa o agendador de snapshots mensais
	monthlySnapshotSyncService := scheduler.NewMonthlySnapshotSyncService(
		clinicRepo,
		snapshotRepo,
		reportService, // Implementa SnapshotBuilder
		cfg,
	)

	if err := monthlySnapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots mensais")
	} else {
		logrus.Info("Agendador de snapshots mensais iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		Reporter:            reportService,
		Authenticator:       authenticator,
		MonthlySnapshotSync: monthlySnapshotSyncService,
		RateLimiter:         middleware.NewRateLimiter(cfg.Report.RateLimitRPM, cfg.Report.RateLimitBurst),
		Database:            pgConn,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToSource garante que o .env ao lado do binário seja encontrado em execução local
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
