package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Mail      MailConfig
	Storage   StorageConfig
	Legacy    LegacyConfig
	Checklist ChecklistConfig
	Google    GoogleConfig
	Firmas    FirmasConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env     string // development, staging, production
	Name    string
	BaseURL string // URL pública, usada en los enlaces de correo
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

// DSN construye el connection string con URL encoding para caracteres especiales en la contraseña.
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

// JWTConfig configuración de los tokens de sesión.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
	CookieName string
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

// MailConfig configuración del envío de correo.
// Driver "sendgrid" en producción; "console" imprime los correos al log (desarrollo).
type MailConfig struct {
	Driver    string
	APIKey    string
	FromEmail string
	FromName  string
}

// StorageConfig configuración del almacenamiento de documentos.
// Driver "local" guarda en disco bajo BasePath; "s3" usa un bucket S3/MinIO.
type StorageConfig struct {
	Driver      string
	BasePath    string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string // vacío = AWS; definido = MinIO u otro compatible
	S3AccessKey string
	S3SecretKey string
}

// LegacyConfig DSNs de las dos bases de datos heredadas con resultados psicométricos.
// Solo lectura; se consultan en vivo por CURP.
type LegacyConfig struct {
	PsicometricosDSN string
	EvaluacionesDSN  string
}

// ChecklistConfig parámetros del checklist de onboarding.
type ChecklistConfig struct {
	// MinItems es el número mínimo de pasos que debe tener el checklist de un
	// usuario para que su expediente pueda considerarse completo.
	MinItems int
	// ResetTokenTTL vigencia de los tokens de recuperación de contraseña.
	ResetTokenTTL time.Duration
}

// GoogleConfig verificación de credenciales de Google para login de administradores.
type GoogleConfig struct {
	ClientID string
}

// FirmasConfig integración con el proveedor de firma electrónica (MiFiel).
type FirmasConfig struct {
	WebhookSecret string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:     getString(v, "APP_ENV", "development"),
			Name:    getString(v, "APP_NAME", "expediente-rh"),
			BaseURL: getString(v, "APP_BASE_URL", "http://localhost:8080"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "expediente_rh"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "expediente-rh"),
			CookieName: getString(v, "SESSION_COOKIE_NAME", "session"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Mail: MailConfig{
			Driver:    getString(v, "MAIL_DRIVER", "console"),
			APIKey:    getString(v, "SENDGRID_API_KEY", ""),
			FromEmail: getString(v, "MAIL_FROM_EMAIL", "no-responder@talentohumano.mx"),
			FromName:  getString(v, "MAIL_FROM_NAME", "Recursos Humanos"),
		},
		Storage: StorageConfig{
			Driver:      getString(v, "STORAGE_DRIVER", "local"),
			BasePath:    getString(v, "STORAGE_BASE_PATH", "./uploads"),
			S3Bucket:    getString(v, "S3_BUCKET", ""),
			S3Region:    getString(v, "S3_REGION", "us-east-1"),
			S3Endpoint:  getString(v, "S3_ENDPOINT", ""),
			S3AccessKey: getString(v, "S3_ACCESS_KEY", ""),
			S3SecretKey: getString(v, "S3_SECRET_KEY", ""),
		},
		Legacy: LegacyConfig{
			PsicometricosDSN: getString(v, "LEGACY_PSICOMETRICOS_DSN", ""),
			EvaluacionesDSN:  getString(v, "LEGACY_EVALUACIONES_DSN", ""),
		},
		Checklist: ChecklistConfig{
			MinItems:      getInt(v, "CHECKLIST_MIN_ITEMS", 10),
			ResetTokenTTL: time.Duration(getInt(v, "RESET_TOKEN_TTL_MINUTES", 30)) * time.Minute,
		},
		Google: GoogleConfig{
			ClientID: getString(v, "GOOGLE_CLIENT_ID", ""),
		},
		Firmas: FirmasConfig{
			WebhookSecret: getString(v, "FIRMAS_WEBHOOK_SECRET", ""),
		},
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
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
