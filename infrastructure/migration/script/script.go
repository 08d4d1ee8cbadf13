package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/vetclinic-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/vetclinic-report-api/internal/config"
)

type step struct {
	name      string
	statement string
}

// steps cria a estrutura usada pelos snapshots mensais; todos os comandos são idempotentes
var steps = []step{
	{
		name: "tabela report_snapshots",
		statement: `CREATE TABLE IF NOT EXISTS report_snapshots (
			id VARCHAR(32) PRIMARY KEY,
			clinic_id VARCHAR(64) NOT NULL REFERENCES clinics(id) ON DELETE CASCADE,
			period VARCHAR(7) NOT NULL,
			period_start DATE NOT NULL,
			summary JSONB,
			months JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name:      "constraint única por clínica e período",
		statement: `CREATE UNIQUE INDEX IF NOT EXISTS report_snapshots_clinic_period_unique ON report_snapshots (clinic_id, period)`,
	},
	{
		name:      "índice de retenção",
		statement: `CREATE INDEX IF NOT EXISTS report_snapshots_period_start_idx ON report_snapshots (period_start)`,
	},
	{
		name:      "índice de consultas por data",
		statement: `CREATE INDEX IF NOT EXISTS consultations_clinic_created_at_idx ON consultations (clinic_id, created_at)`,
	},
	{
		name:      "índice de agendamentos por data",
		statement: `CREATE INDEX IF NOT EXISTS appointments_clinic_date_idx ON appointments (clinic_id, date)`,
	},
	{
		name:      "índice de prescrições por data",
		statement: `CREATE INDEX IF NOT EXISTS prescriptions_clinic_start_date_idx ON prescriptions (clinic_id, start_date)`,
	},
}

// migrate aplica todos os passos numa única transação
func migrate(ctx context.Context, conn postgres.Conn) error {
	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, s := range steps {
			startTime := time.Now()

			if _, err := tx.ExecContext(ctx, s.statement); err != nil {
				return fmt.Errorf("erro ao aplicar %s: %w", s.name, err)
			}

			logrus.WithFields(logrus.Fields{
				"step":        fmt.Sprintf("%d/%d", i+1, len(steps)),
				"duration_ms": time.Since(startTime).Milliseconds(),
			}).Infof("migration: %s aplicado", s.name)
		}
		return nil
	})
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("migration: iniciando script de migração")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("migration: erro ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("migration: erro ao conectar ao banco de dados")
	}
	defer conn.Close()

	startTime := time.Now()
	if err := migrate(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("migration: transação revertida")
	}

	logrus.Infof("migration: concluída em %v", time.Since(startTime))
}
