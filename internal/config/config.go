package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                 App                 `mapstructure:",squash"`
	Server              Server              `mapstructure:",squash"`
	Database            Database            `mapstructure:",squash"`
	Report              Report              `mapstructure:",squash"`
	MonthlySnapshotSync MonthlySnapshotSync `mapstructure:",squash"`
	SecretKey           string              `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	SSLMode  string `mapstructure:"database_sslmode"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Report struct {
	Timezone            string         `mapstructure:"report_timezone"`
	QueryTimeoutSeconds int            `mapstructure:"report_query_timeout_seconds"`
	RateLimitRPM        int            `mapstructure:"report_rate_limit_rpm"`
	RateLimitBurst      int            `mapstructure:"report_rate_limit_burst"`
	Location            *time.Location `mapstructure:"-"`
}

// QueryTimeout é o limite de tempo das consultas que alimentam um relatório
func (r Report) QueryTimeout() time.Duration {
	if r.QueryTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(r.QueryTimeoutSeconds) * time.Second
}

type MonthlySnapshotSync struct {
	CronSchedule        string `mapstructure:"monthly_snapshot_sync_cron"`
	RequestDelaySeconds int    `mapstructure:"monthly_snapshot_sync_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"monthly_snapshot_sync_max_concurrent_jobs"`
	Enabled             bool   `mapstructure:"monthly_snapshot_sync_enabled"`
	MonthLookBack       int    `mapstructure:"monthly_snapshot_sync_month_lookback"`
	SeriesMonths        int    `mapstructure:"monthly_snapshot_sync_series_months"`
	RetentionMonths     int    `mapstructure:"monthly_snapshot_sync_retention_months"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/vetclinic")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	// Defaults para relatórios
	viper.SetDefault("REPORT_TIMEZONE", "UTC")
	viper.SetDefault("REPORT_QUERY_TIMEOUT_SECONDS", 30)
	viper.SetDefault("REPORT_RATE_LIMIT_RPM", 60) // Requisições por minuto por usuário
	viper.SetDefault("REPORT_RATE_LIMIT_BURST", 10)

	// Defaults para snapshots mensais
	viper.SetDefault("MONTHLY_SNAPSHOT_SYNC_CRON", "0 5 1 * *")        // No primeiro dia de cada mês às 5h da manhã
	viper.SetDefault("MONTHLY_SNAPSHOT_SYNC_REQUEST_DELAY_SECONDS", 1) // 1 segundo entre clínicas
	viper.SetDefault("MONTHLY_SNAPSHOT_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 jobs concorrentes
	viper.SetDefault("MONTHLY_SNAPSHOT_SYNC_ENABLED", false)
	viper.SetDefault("MONTHLY_SNAPSHOT_SYNC_MONTH_LOOKBACK", 1) // 1 mês para consolidar
	viper.SetDefault("MONTHLY_SNAPSHOT_SYNC_SERIES_MONTHS", 5)  // Série de 6 meses por snapshot
	viper.SetDefault("MONTHLY_SNAPSHOT_SYNC_RETENTION_MONTHS", 24)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	location, err := time.LoadLocation(config.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("fuso horário de relatório inválido %q: %w", config.Report.Timezone, err)
	}
	config.Report.Location = location

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s?sslmode=%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
		config.Database.SSLMode,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
