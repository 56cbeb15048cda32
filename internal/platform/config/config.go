package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// StoreDriverMemory はプロセス内メモリにスケジュールを保持します。
	StoreDriverMemory = "memory"
	// StoreDriverPostgres は PostgreSQL にスケジュールを保持します。
	StoreDriverPostgres = "postgres"

	defaultWorkingDaysPerWeek = 5
	defaultEventSubject       = "rota.schedule.generated"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Store    StoreConfig    `yaml:"store"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig は待ち受けに関する設定です。HTTPListenAddr が空なら HTTP は起動しません。
type ServerConfig struct {
	ListenAddr     string `yaml:"listen_addr"`
	HTTPListenAddr string `yaml:"http_listen_addr"`
}

// ScheduleConfig はスケジュール生成に関する設定です。
type ScheduleConfig struct {
	// WorkingDaysPerWeek は 1 週間に出社扱いにする社員数の上限です。
	// 設定ファイルで省略した場合のみ既定値 5 になり、0 以下は拒否されます。
	WorkingDaysPerWeek    int  `yaml:"-"`
	WorkingDaysPerWeekRaw *int `yaml:"working_days_per_week"`
}

// StoreConfig は現在のスケジュールの保存先です。
type StoreConfig struct {
	Driver string `yaml:"driver"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SSLMode            string        `yaml:"ssl_mode"`
	ApplicationName    string        `yaml:"application_name"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// EventsConfig は NATS への生成イベント通知の設定です。NATSURL が空なら通知しません。
type EventsConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// LogConfig はログ出力の設定です。
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load は指定されたパスから設定ファイルを読み込みます。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}
	return Parse(b)
}

// Parse は YAML を解釈し、既定値の補完と検証を行います。
func Parse(b []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}

	c.Schedule.WorkingDaysPerWeek = defaultWorkingDaysPerWeek
	if raw := c.Schedule.WorkingDaysPerWeekRaw; raw != nil {
		if *raw < 1 {
			return fmt.Errorf("config: schedule.working_days_per_week must be at least 1")
		}
		c.Schedule.WorkingDaysPerWeek = *raw
	}

	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case "":
		c.Store.Driver = StoreDriverMemory
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("config: store.driver %q is not supported", c.Store.Driver)
	}

	if c.Events.Subject == "" {
		c.Events.Subject = defaultEventSubject
	}

	c.Log.Level = strings.ToLower(c.Log.Level)
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Log.Format = strings.ToLower(c.Log.Format)
	switch c.Log.Format {
	case "":
		c.Log.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format %q is not supported", c.Log.Format)
	}

	return nil
}

// Validate は接続に必要な項目を検証し、既定値と接続時間の設定を補完します。
// store.driver が memory の場合でも、マイグレーション時はこれで接続設定を確認します。
func (d *DatabaseConfig) Validate() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	return time.ParseDuration(raw)
}

// DSN は pgx と golang-migrate 用の接続文字列を返します。認証情報はエスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
