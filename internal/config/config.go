// Package config loads the refresh settings file. The file is YAML; since
// YAML is a superset of JSON the legacy settings.json loads unchanged.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	CalendarFile = "Календарь.xlsm"
	MappingsFile = "Справочники.xlsm"
)

type Credentials struct {
	User     string `yaml:"db_user"`
	Password string `yaml:"password"`
}

type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Port   int    `yaml:"port"`
}

// Folders locate the planning share. Calendar and Mappings default to the
// reference workbooks inside Master.
type Folders struct {
	Master   string `yaml:"master"`
	Calendar string `yaml:"calendar"`
	Mappings string `yaml:"mappings"`
	Logs     string `yaml:"logs"`
}

type SMTP struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Config holds all refresh settings.
type Config struct {
	Credentials Credentials `yaml:"credentials"`
	Hostname    string      `yaml:"hostname"`
	Schema      string      `yaml:"schema"`
	Weeks       []int       `yaml:"weeks_no"`
	Year        int         `yaml:"year_no"`
	Employees   []string    `yaml:"employees"`
	SendMailTo  []string    `yaml:"send_mail_to"`

	Database Database `yaml:"database"`
	Folders  Folders  `yaml:"folders"`
	SMTP     SMTP     `yaml:"smtp"`
}

// DefaultConfig returns a Config writing to a local SQLite file with mail
// disabled.
func DefaultConfig() *Config {
	return &Config{
		Database: Database{Driver: DriverSQLite, DSN: "planfact.db"},
		Folders:  Folders{Master: ".", Logs: "logs"},
		SMTP:     SMTP{Port: 587},
	}
}

// Load reads the settings file at path over the defaults and applies
// PLANFACT_* environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PLANFACT_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("PLANFACT_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("PLANFACT_DB_USER"); v != "" {
		c.Credentials.User = v
	}
	if v := os.Getenv("PLANFACT_DB_PASSWORD"); v != "" {
		c.Credentials.Password = v
	}
	if v := os.Getenv("PLANFACT_MASTER_FOLDER"); v != "" {
		c.Folders.Master = v
	}
	if v := os.Getenv("PLANFACT_LOGS_FOLDER"); v != "" {
		c.Folders.Logs = v
	}
	if v := os.Getenv("PLANFACT_SMTP_HOST"); v != "" {
		c.SMTP.Host = v
	}
	if v := os.Getenv("PLANFACT_SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.SMTP.Port = n
		}
	}
	if v := os.Getenv("PLANFACT_SMTP_USERNAME"); v != "" {
		c.SMTP.Username = v
	}
	if v := os.Getenv("PLANFACT_SMTP_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("PLANFACT_SMTP_FROM"); v != "" {
		c.SMTP.From = v
	}
}

// Validate checks the settings needed for a refresh run.
func (c *Config) Validate() error {
	if len(c.Weeks) == 0 {
		return fmt.Errorf("%w: weeks_no is empty", ErrInvalid)
	}
	for _, w := range c.Weeks {
		if w < 1 || w > 53 {
			return fmt.Errorf("%w: week %d out of range", ErrInvalid, w)
		}
	}
	if c.Year < 1 {
		return fmt.Errorf("%w: year_no is not set", ErrInvalid)
	}
	if c.Folders.Master == "" {
		return fmt.Errorf("%w: folders.master is not set", ErrInvalid)
	}
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.DSN == "" {
			return fmt.Errorf("%w: database.dsn is required for sqlite", ErrInvalid)
		}
	case DriverPostgres:
		if c.Database.DSN == "" && (c.Hostname == "" || c.Schema == "") {
			return fmt.Errorf("%w: hostname and schema or database.dsn are required for postgres", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unsupported database driver %q", ErrInvalid, c.Database.Driver)
	}
	if c.MailEnabled() && c.SMTP.From == "" {
		return fmt.Errorf("%w: smtp.from is required when mail is sent", ErrInvalid)
	}
	return nil
}

// DSN returns the connection string. For postgres without an explicit DSN
// it is built from hostname, schema and credentials.
func (c *Config) DSN() string {
	if c.Database.DSN != "" || c.Database.Driver != DriverPostgres {
		return c.Database.DSN
	}
	host := c.Hostname
	if c.Database.Port > 0 {
		host = net.JoinHostPort(host, strconv.Itoa(c.Database.Port))
	}
	u := url.URL{Scheme: "postgres", Host: host, Path: "/" + c.Schema}
	if c.Credentials.User != "" {
		u.User = url.UserPassword(c.Credentials.User, c.Credentials.Password)
	}
	return u.String()
}

// Redacted is DSN with the password masked, for logging.
func (c *Config) Redacted() string {
	dsn := c.DSN()
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}

func (c *Config) CalendarPath() string {
	if c.Folders.Calendar != "" {
		return c.Folders.Calendar
	}
	return filepath.Join(c.Folders.Master, CalendarFile)
}

func (c *Config) MappingsPath() string {
	if c.Folders.Mappings != "" {
		return c.Folders.Mappings
	}
	return filepath.Join(c.Folders.Master, MappingsFile)
}

// MailEnabled reports whether the summary goes out over SMTP.
func (c *Config) MailEnabled() bool {
	return c.SMTP.Host != "" && len(c.SendMailTo) > 0
}
