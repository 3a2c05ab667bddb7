package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"prod"`
	HTTPServer   `yaml:"http_server"`
	Workbook     Workbook  `yaml:"workbook"`
	Directory    Directory `yaml:"directory"`
	CORS         CORS      `yaml:"cors"`
	AdminLogin   string    `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass    string    `yaml:"admin_pass" env:"ADMIN_PASS"`
	FrontendDir  string    `yaml:"frontend_dir" env:"FRONTEND_DIR"`
	ErrorLogPath string    `yaml:"error_log_path" env:"ERROR_LOG_PATH" env-default:"errors.log"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Workbook describes both spreadsheets the planner works with. The column
// positions are zero-based and refer to the uploaded specification list.
type Workbook struct {
	TemplatePath   string `yaml:"template_path" env:"TEMPLATE_PATH" env-default:"./assets/stand-guide-effort-plan.xlsx"`
	SpecSheet      string `yaml:"spec_sheet" env:"SPEC_SHEET" env-default:"specification list"`
	CategoryColumn int    `yaml:"category_column" env:"CATEGORY_COLUMN" env-default:"13"`
	LengthColumn   int    `yaml:"length_column" env:"LENGTH_COLUMN" env-default:"28"`
	StandSheet     string `yaml:"stand_sheet" env:"STAND_SHEET" env-default:"Stand formal issuance"`
	GuideSheet     string `yaml:"guide_sheet" env:"GUIDE_SHEET" env-default:"Guide formal issuance"`
	DistanceMarker string `yaml:"distance_marker" env:"DISTANCE_MARKER" env-default:"total distance(m)"`
	FormulaMarker  string `yaml:"formula_marker" env:"FORMULA_MARKER" env-default:"formula"`
	OutputName     string `yaml:"output_name" env:"OUTPUT_NAME" env-default:"stand-guide effort plan_updated.xlsx"`
	MaxUploadMB    int64  `yaml:"max_upload_mb" env:"MAX_UPLOAD_MB" env-default:"32"`
}

type Directory struct {
	Driver string `yaml:"driver" env:"DIRECTORY_DRIVER" env-default:"memory"` // memory, mysql, sqlite
	DSN    string `yaml:"dsn" env:"DIRECTORY_DSN"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:5173,http://localhost:8081"`
}

// Load reads the yaml file at path and overlays the environment. A missing
// file is not an error: environment and defaults are used instead.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	// .env is optional
	_ = godotenv.Load()

	var cfg Config

	if path == "" {
		path = defaultConfigPath
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: read env: %w", op, err)
		}
	} else {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%s: read %s: %w", op, path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func MustConfig() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

func (c *Config) Validate() error {
	wb := c.Workbook

	if wb.CategoryColumn < 0 || wb.LengthColumn < 0 {
		return fmt.Errorf("workbook columns must be non-negative, got category=%d length=%d", wb.CategoryColumn, wb.LengthColumn)
	}
	if wb.SpecSheet == "" || wb.StandSheet == "" || wb.GuideSheet == "" {
		return errors.New("workbook sheet names must not be empty")
	}
	if wb.DistanceMarker == "" || wb.FormulaMarker == "" {
		return errors.New("workbook markers must not be empty")
	}
	if wb.MaxUploadMB <= 0 {
		return fmt.Errorf("workbook.max_upload_mb must be positive, got %d", wb.MaxUploadMB)
	}

	switch c.Directory.Driver {
	case "memory":
	case "mysql", "sqlite":
		if c.Directory.DSN == "" {
			return fmt.Errorf("directory.dsn is required for driver %q", c.Directory.Driver)
		}
	default:
		return fmt.Errorf("unknown directory driver %q", c.Directory.Driver)
	}

	return nil
}
