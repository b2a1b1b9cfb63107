package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Billing   BillingConfig
	Scheduler SchedulerConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string

	// SeedAdminPassword crea el usuario gerente "admin" al arrancar con DB_DRIVER=memory.
	SeedAdminPassword string
}

// IsDevelopment indica si se muestran mensajes de error internos y logs legibles.
func (c AppConfig) IsDevelopment() bool { return c.Env == "development" }

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
// Driver "memory" levanta el almacenamiento en memoria (demos y pruebas locales).
type DBConfig struct {
	Driver       string // postgres | memory
	DatabaseURL  string
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxConns     int
	QueryTimeout int // segundos por operación; 0 = sin límite
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT. La expiración es fija desde la emisión (no se renueva con el uso).
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host         string
	Port         int
	AllowOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BillingConfig parámetros de facturación.
type BillingConfig struct {
	DefaultSeries     string
	NumberWidth       int
	QuoteValidityDays int
	TaxRate           decimal.Decimal // porcentaje; 0 = sin impuesto
	CompanyName       string          // encabezado del PDF
	CompanyNIT        string
	CompanyAddress    string
}

// SchedulerConfig barrido periódico de vencimientos.
type SchedulerConfig struct {
	Enabled  bool
	Timezone string
	At       string // HH:MM diario
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	taxRate, err := decimal.NewFromString(getString(v, "TAX_RATE", "0"))
	if err != nil {
		return nil, fmt.Errorf("TAX_RATE inválido: %w", err)
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("TAX_RATE fuera de rango: %s", taxRate)
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "ferreteria-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),

			SeedAdminPassword: getString(v, "SEED_ADMIN_PASSWORD", ""),
		},
		DB: DBConfig{
			Driver:       getString(v, "DB_DRIVER", "postgres"),
			DatabaseURL:  getString(v, "DATABASE_URL", ""),
			Host:         getString(v, "DB_HOST", "localhost"),
			Port:         getInt(v, "DB_PORT", 5432),
			User:         getString(v, "DB_USER", "postgres"),
			Password:     getString(v, "DB_PASSWORD", ""),
			DBName:       getString(v, "DB_NAME", "ferreteria"),
			SSLMode:      getString(v, "DB_SSLMODE", "disable"),
			MaxConns:     getInt(v, "DB_MAX_CONNS", 25),
			QueryTimeout: getInt(v, "DB_QUERY_TIMEOUT_SECONDS", 10),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "ferreteria-api"),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "HTTP_PORT", 8080),
			AllowOrigins: getString(v, "CORS_ALLOW_ORIGINS", "*"),
		},
		Billing: BillingConfig{
			DefaultSeries:     getString(v, "INVOICE_DEFAULT_SERIES", "A"),
			NumberWidth:       getInt(v, "INVOICE_NUMBER_WIDTH", 8),
			QuoteValidityDays: getInt(v, "QUOTE_VALIDITY_DAYS", 15),
			TaxRate:           taxRate,
			CompanyName:       getString(v, "COMPANY_NAME", "Pinturas y Ferretería"),
			CompanyNIT:        getString(v, "COMPANY_NIT", ""),
			CompanyAddress:    getString(v, "COMPANY_ADDRESS", ""),
		},
		Scheduler: SchedulerConfig{
			Enabled:  getBool(v, "SCHEDULER_ENABLED", true),
			Timezone: getString(v, "SCHEDULER_TIMEZONE", "America/Guatemala"),
			At:       getString(v, "SCHEDULER_AT", "00:05"),
		},
	}

	if cfg.DB.Driver != "postgres" && cfg.DB.Driver != "memory" {
		return nil, fmt.Errorf("DB_DRIVER desconocido: %s", cfg.DB.Driver)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
