package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	envBotToken  = "TG_BOT_TOKEN"
	envJwtSecret = "JWT_SECRET"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Server    Server    `yaml:"server"`
	Upstream  Upstream  `yaml:"upstream"`
	Proxies   []Proxy   `yaml:"proxies" validate:"required,min=1,dive"`
	Session   Session   `yaml:"session"`
	RateLimit RateLimit `yaml:"rate_limit"`
	Log       Log       `yaml:"log"`
	DevMode   bool      `yaml:"dev_mode"` // accept empty initData and hand out a mock user
}

type Server struct {
	Port           int           `yaml:"port" validate:"required,min=1,max=65535"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	SecureCookies  bool          `yaml:"secure_cookies"`
}

type Upstream struct {
	BaseURL        string        `yaml:"base_url" validate:"required,url"`
	AttemptTimeout time.Duration `yaml:"attempt_timeout" validate:"required"` // per proxy attempt
	UserAgent      string        `yaml:"user_agent"`
}

// Proxy is one entry of the ordered fallback chain.
// Empty template means a direct request.
type Proxy struct {
	Name     string `yaml:"name" validate:"required"`
	Template string `yaml:"template"`
}

type Session struct {
	TTL            time.Duration `yaml:"ttl"`
	InitDataMaxAge time.Duration `yaml:"init_data_max_age"`
}

type RateLimit struct {
	RPS   float64 `yaml:"rps" validate:"gte=0"`
	Burst float64 `yaml:"burst" validate:"gte=0"`
}

type Log struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	JSON  bool   `yaml:"json"`
}

type Private struct {
	BotToken string `yaml:"bot_token"`
	JwtKey   string `yaml:"jwt_key" validate:"required"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.Session.TTL
}

func (c *Config) BotToken() string {
	return c.Private.BotToken
}

func (p *Public) setDefaults() {
	if p.Server.ReadTimeout == 0 {
		p.Server.ReadTimeout = 5 * time.Second
	}
	if p.Server.WriteTimeout == 0 {
		p.Server.WriteTimeout = 30 * time.Second
	}
	if p.Session.TTL == 0 {
		p.Session.TTL = 30 * 24 * time.Hour
	}
	if p.Session.InitDataMaxAge == 0 {
		p.Session.InitDataMaxAge = 24 * time.Hour
	}
	if p.RateLimit.RPS == 0 {
		p.RateLimit.RPS = 10
	}
	if p.RateLimit.Burst == 0 {
		p.RateLimit.Burst = 20
	}
	if p.Log.Level == "" {
		p.Log.Level = "info"
	}
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

// private.yaml may be absent when secrets come from the environment.
func loadOptionalPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return
	}
	mustLoadPath(configPath, output)
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.setDefaults()

	var private Private
	loadOptionalPath(path.Join(configFolder, "private.yaml"), &private)
	if v := os.Getenv(envBotToken); v != "" {
		private.BotToken = v
	}
	if v := os.Getenv(envJwtSecret); v != "" {
		private.JwtKey = v
	}

	cfg := &Config{Public: public, Private: private}
	if err := cfg.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c.Public); err != nil {
		return err
	}
	if err := validate.Struct(c.Private); err != nil {
		return err
	}
	if c.Private.BotToken == "" && !c.Public.DevMode {
		return fmt.Errorf("bot_token is required outside of dev_mode")
	}
	return nil
}
