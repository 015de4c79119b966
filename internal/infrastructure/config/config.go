package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Store    StoreConfig
	Bot      BotConfig
	Media    MediaConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds the sqlite database settings
type DatabaseConfig struct {
	Path string // path to the sqlite file, ":memory:" for tests
}

// RedisConfig holds the optional catalog cache settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxBodySize  int64
}

// StoreConfig holds storefront-specific settings
type StoreConfig struct {
	Title           string
	ManagerUsername string  // manager contact, @ stripped
	ManagerID       int64   // fallback contact by telegram id
	AdminChatIDs    []int64 // chats that receive order notifications
}

// ManagerContactURL returns the deep link behind the "write to us"
// button: the manager's public t.me link when a username is set,
// the tg:// id link as a fallback, empty when neither is configured.
func (c StoreConfig) ManagerContactURL() string {
	if c.ManagerUsername != "" {
		return "https://t.me/" + c.ManagerUsername
	}
	if c.ManagerID != 0 {
		return fmt.Sprintf("tg://user?id=%d", c.ManagerID)
	}
	return ""
}

// BotConfig holds Telegram bot settings
type BotConfig struct {
	Token      string
	APIBaseURL string // overridable for tests
	WebAppURL  string // public URL the /start button opens
}

// MediaConfig holds media resolution options
type MediaConfig struct {
	GalleryEnabled bool
	VideoEnabled   bool
}

// Load loads configuration from a TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with SHOP_ prefix (e.g. SHOP_BOT_TOKEN)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// config file not found is OK, use defaults and env vars
	}

	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("database.path"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			IdleTimeout:  v.GetDuration("http.idle_timeout"),
			MaxBodySize:  v.GetInt64("http.max_body_size"),
		},
		Store: StoreConfig{
			Title:           v.GetString("store.title"),
			ManagerUsername: strings.TrimPrefix(v.GetString("store.manager_username"), "@"),
			ManagerID:       v.GetInt64("store.manager_id"),
			AdminChatIDs:    parseChatIDs(v.GetString("store.admin_chat_ids")),
		},
		Bot: BotConfig{
			Token:      v.GetString("bot.token"),
			APIBaseURL: v.GetString("bot.api_base_url"),
			WebAppURL:  normalizeWebAppURL(v.GetString("bot.webapp_url")),
		},
		Media: MediaConfig{
			GalleryEnabled: v.GetBool("media.gallery_enabled"),
			VideoEnabled:   v.GetBool("media.video_enabled"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "storefront")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8000")
	v.SetDefault("database.path", "data.sqlite")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.ttl", 5*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.max_body_size", int64(1<<20))
	v.SetDefault("store.title", "LAYOUTPLACE Shop")
	v.SetDefault("bot.api_base_url", "https://api.telegram.org")
	v.SetDefault("media.gallery_enabled", true)
	v.SetDefault("media.video_enabled", true)
}

// parseChatIDs parses a comma-separated id list, skipping bad items
func parseChatIDs(s string) []int64 {
	var out []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var id int64
		if _, err := fmt.Sscanf(part, "%d", &id); err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}

// normalizeWebAppURL forces an https scheme onto a bare host and
// points the link at the /web/ entry the static frontend is served
// under. Empty stays empty, meaning no web-app button.
func normalizeWebAppURL(s string) string {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + strings.TrimLeft(s, "/")
	}
	return s + "/web/"
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("app.port must not be empty")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Redis.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("redis.host must be set when redis is enabled")
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
