package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (lida via Viper a partir do ambiente e, opcionalmente, de arquivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	SMTP     SMTPConfig
	Invite   InviteConfig
	Chat     ChatConfig
	Storage  StorageConfig
	Fallback FallbackConfig
}

// AppConfig configuração geral.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig configuração do PostgreSQL.
// Se DatabaseURL não estiver vazio, é usado como connection string completa (ex. DATABASE_URL do Supabase).
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
}

// ConnectionString devolve o DSN: DATABASE_URL se definido, senão o montado por DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devolve a connection string com URL encoding para caracteres especiais na senha.
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

// JWTConfig configuração dos tokens de sessão.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SMTPConfig servidor de e-mail usado para enviar convites. Host vazio = envio apenas registrado em log.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// InviteConfig regras de geração dos códigos de convite.
type InviteConfig struct {
	CodeFormat string // numeric | alphanumeric
	SignupURL  string // link incluído no e-mail
}

// ChatConfig limites do assistente.
type ChatConfig struct {
	TimeoutSeconds int
}

// StorageConfig bucket S3 para publicar QR codes. Bucket vazio = publicação desativada.
type StorageConfig struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // opcional (MinIO, Supabase Storage S3)
	PublicBaseURL   string
}

// Enabled indica se há bucket configurado.
func (c StorageConfig) Enabled() bool {
	return c.Bucket != ""
}

// FallbackConfig dados estáticos usados quando o perfil distribuidor ainda não foi vinculado.
type FallbackConfig struct {
	Enabled         bool
	DistributorCNPJ string
}

// Load lê a configuração a partir de variáveis de ambiente (e opcionalmente de arquivo).
// As env vars têm prioridade. Nomes esperados: APP_ENV, DB_HOST, JWT_SECRET, SMTP_HOST etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignorado se não existir

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "rastreio-doces"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "rastreio_doces"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "rastreio-doces"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		SMTP: SMTPConfig{
			Host:     getString(v, "SMTP_HOST", ""),
			Port:     getInt(v, "SMTP_PORT", 587),
			Username: getString(v, "SMTP_USERNAME", ""),
			Password: getString(v, "SMTP_PASSWORD", ""),
			From:     getString(v, "SMTP_FROM", "nao-responda@rastreio-doces.local"),
		},
		Invite: InviteConfig{
			CodeFormat: getString(v, "INVITE_CODE_FORMAT", "numeric"),
			SignupURL:  getString(v, "INVITE_SIGNUP_URL", "http://localhost:5173/cadastro"),
		},
		Chat: ChatConfig{
			TimeoutSeconds: getInt(v, "CHAT_TIMEOUT_SECONDS", 15),
		},
		Storage: StorageConfig{
			Region:          getString(v, "STORAGE_REGION", "us-east-1"),
			Bucket:          getString(v, "STORAGE_BUCKET", ""),
			AccessKeyID:     getString(v, "STORAGE_ACCESS_KEY_ID", ""),
			SecretAccessKey: getString(v, "STORAGE_SECRET_ACCESS_KEY", ""),
			Endpoint:        getString(v, "STORAGE_ENDPOINT", ""),
			PublicBaseURL:   getString(v, "STORAGE_PUBLIC_BASE_URL", ""),
		},
		Fallback: FallbackConfig{
			Enabled:         getBool(v, "FALLBACK_ENABLED", false),
			DistributorCNPJ: getString(v, "FALLBACK_DISTRIBUTOR_CNPJ", ""),
		},
	}

	if cfg.Invite.CodeFormat != "numeric" && cfg.Invite.CodeFormat != "alphanumeric" {
		return nil, fmt.Errorf("config: INVITE_CODE_FORMAT inválido %q (numeric|alphanumeric)", cfg.Invite.CodeFormat)
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
