package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Log      LogConfig
	Kafka    KafkaConfig
	Notify   NotifyConfig
	Orders   OrdersConfig
	Redis    RedisConfig
	Payments PaymentsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	StoreDriver string // postgres | memory
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
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

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig nivel del logger.
type LogConfig struct {
	Level string
}

// KafkaConfig destino de las notificaciones. Sin brokers se usa el sink de log.
type KafkaConfig struct {
	Brokers       []string
	LowStockTopic string
	OrderTopic    string
}

// Enabled indica si hay brokers configurados.
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// NotifyConfig parámetros del dispatcher de notificaciones.
type NotifyConfig struct {
	QueueSize int
	Workers   int
	Timeout   time.Duration
}

// OrdersConfig reglas de pedidos.
type OrdersConfig struct {
	LargeThreshold decimal.Decimal
}

// RedisConfig lock de verificación de pagos. Addr vacío = lock en memoria.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PaymentsConfig pasarela Chapa. SecretKey vacío = pasarela simulada.
type PaymentsConfig struct {
	ChapaSecretKey  string
	ChapaBaseURL    string
	CallbackBaseURL string
	ReturnURL       string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	threshold, err := decimal.NewFromString(getString(v, "ORDER_LARGE_THRESHOLD", "5000"))
	if err != nil {
		return nil, fmt.Errorf("config: ORDER_LARGE_THRESHOLD inválido: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "stock-orders-api"),
			StoreDriver: strings.ToLower(getString(v, "STORE_DRIVER", "postgres")),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "stock_orders"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "stock-orders-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Kafka: KafkaConfig{
			Brokers:       splitList(getString(v, "KAFKA_BROKERS", "")),
			LowStockTopic: getString(v, "KAFKA_LOW_STOCK_TOPIC", "low-stock-alerts"),
			OrderTopic:    getString(v, "KAFKA_ORDER_TOPIC", "order-notifications"),
		},
		Notify: NotifyConfig{
			QueueSize: getInt(v, "NOTIFY_QUEUE_SIZE", 256),
			Workers:   getInt(v, "NOTIFY_WORKERS", 2),
			Timeout:   time.Duration(getInt(v, "NOTIFY_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Orders: OrdersConfig{
			LargeThreshold: threshold,
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Payments: PaymentsConfig{
			ChapaSecretKey:  getString(v, "CHAPA_SECRET_KEY", ""),
			ChapaBaseURL:    getString(v, "CHAPA_BASE_URL", "https://api.chapa.co/v1"),
			CallbackBaseURL: getString(v, "PAYMENT_CALLBACK_BASE_URL", "http://localhost:8080"),
			ReturnURL:       getString(v, "PAYMENT_RETURN_URL", ""),
		},
	}

	if cfg.App.StoreDriver != "postgres" && cfg.App.StoreDriver != "memory" {
		return nil, fmt.Errorf("config: STORE_DRIVER %q no soportado (postgres|memory)", cfg.App.StoreDriver)
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
