package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "Valores padrão",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "UTC", cfg.Report.Location.String())
				assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
				assert.Equal(t, "0 5 1 * *", cfg.MonthlySnapshotSync.CronSchedule)
				assert.Equal(t, 3, cfg.MonthlySnapshotSync.MaxConcurrentJobs)
				assert.Equal(t, 1, cfg.MonthlySnapshotSync.MonthLookBack)
				assert.Equal(t, 5, cfg.MonthlySnapshotSync.SeriesMonths)
				assert.Equal(t, 24, cfg.MonthlySnapshotSync.RetentionMonths)
				assert.False(t, cfg.MonthlySnapshotSync.Enabled)
				assert.Equal(t, 60, cfg.Report.RateLimitRPM)
			},
		},
		{
			name: "Fuso e origens do ambiente",
			env: map[string]string{
				"REPORT_TIMEZONE":      "America/Sao_Paulo",
				"CORS_ALLOWED_ORIGINS": "https://app.clinica.com,https://admin.clinica.com",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "America/Sao_Paulo", cfg.Report.Location.String())
				assert.Equal(t, []string{"https://app.clinica.com", "https://admin.clinica.com"}, cfg.Server.AllowedOrigins)
			},
		},
		{
			name: "Agendador de snapshots e banco do ambiente",
			env: map[string]string{
				"MONTHLY_SNAPSHOT_SYNC_ENABLED":          "true",
				"MONTHLY_SNAPSHOT_SYNC_MONTH_LOOKBACK":   "3",
				"MONTHLY_SNAPSHOT_SYNC_RETENTION_MONTHS": "12",
				"REPORT_QUERY_TIMEOUT_SECONDS":           "5",
				"DATABASE_USER":                          "vet",
				"DATABASE_PASSWORD":                      "segredo",
				"DATABASE_URL":                           "db:5432/clinica",
				"DATABASE_SSLMODE":                       "require",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.MonthlySnapshotSync.Enabled)
				assert.Equal(t, 3, cfg.MonthlySnapshotSync.MonthLookBack)
				assert.Equal(t, 12, cfg.MonthlySnapshotSync.RetentionMonths)
				assert.Equal(t, "5s", cfg.Report.QueryTimeout().String())
				assert.Equal(t, "postgres://vet:segredo@db:5432/clinica?sslmode=require", cfg.Database.DSN)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			cfg, err := NewConfig()
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestNewConfigInvalidTimezone(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("REPORT_TIMEZONE", "Marte/Base_Alfa")

	cfg, err := NewConfig()

	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "fuso horário de relatório inválido")
}
