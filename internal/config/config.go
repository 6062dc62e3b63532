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

const (
	SourceFile = "file"
	SourceS3   = "s3"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Dataset       Dataset       `mapstructure:",squash"`
	Redis         Redis         `mapstructure:",squash"`
	Report        Report        `mapstructure:",squash"`
	ReportRefresh ReportRefresh `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host               string   `mapstructure:"host"`
	Port               string   `mapstructure:"port"`
	CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Dataset struct {
	Source     string `mapstructure:"dataset_source"`
	Dir        string `mapstructure:"dataset_dir"`
	VisitsFile string `mapstructure:"dataset_visits_file"`
	OrdersFile string `mapstructure:"dataset_orders_file"`
	CostsFile  string `mapstructure:"dataset_costs_file"`
	S3Bucket   string `mapstructure:"dataset_s3_bucket"`
	S3Region   string `mapstructure:"dataset_s3_region"`
	S3Prefix   string `mapstructure:"dataset_s3_prefix"`
}

type Redis struct {
	Enabled  bool   `mapstructure:"redis_enabled"`
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type Report struct {
	StoreEnabled  bool          `mapstructure:"report_store_enabled"`
	CacheTTL      time.Duration `mapstructure:"report_cache_ttl"`
	DurationBins  int           `mapstructure:"report_duration_bins"`
	RetentionDays int           `mapstructure:"report_retention_days"`
}

type ReportRefresh struct {
	CronSchedule string `mapstructure:"report_refresh_cron"`
	Enabled      bool   `mapstructure:"report_refresh_enabled"`
}

type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/afisha?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "")

	viper.SetDefault("DATASET_SOURCE", SourceFile)
	viper.SetDefault("DATASET_DIR", "./datasets")
	viper.SetDefault("DATASET_VISITS_FILE", "visits_log_us.csv")
	viper.SetDefault("DATASET_ORDERS_FILE", "orders_log_us.csv")
	viper.SetDefault("DATASET_COSTS_FILE", "costs_us.csv")
	viper.SetDefault("DATASET_S3_BUCKET", "")
	viper.SetDefault("DATASET_S3_REGION", "us-east-1")
	viper.SetDefault("DATASET_S3_PREFIX", "")

	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("REPORT_STORE_ENABLED", false)
	viper.SetDefault("REPORT_CACHE_TTL", "24h")
	viper.SetDefault("REPORT_DURATION_BINS", 100)
	viper.SetDefault("REPORT_RETENTION_DAYS", 90)

	// Todos os dias às 3h da manhã
	viper.SetDefault("REPORT_REFRESH_CRON", "0 3 * * *")
	viper.SetDefault("REPORT_REFRESH_ENABLED", false)

	viper.SetDefault("AUTH_SECRET", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
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

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate verifica combinações de configuração que impedem a inicialização
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case SourceFile:
		if c.Dataset.Dir == "" {
			return fmt.Errorf("DATASET_DIR é obrigatório quando DATASET_SOURCE=%s", SourceFile)
		}
	case SourceS3:
		if c.Dataset.S3Bucket == "" {
			return fmt.Errorf("DATASET_S3_BUCKET é obrigatório quando DATASET_SOURCE=%s", SourceS3)
		}
	default:
		return fmt.Errorf("DATASET_SOURCE inválido: %q", c.Dataset.Source)
	}

	if c.Report.DurationBins <= 0 {
		return fmt.Errorf("REPORT_DURATION_BINS deve ser positivo: %d", c.Report.DurationBins)
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado; usando apenas variáveis de ambiente")
}
