package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"dispatchsim/internal/core/application/pool"
	"dispatchsim/internal/core/domain/services"
	"dispatchsim/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the process configuration. It is loaded from built-in defaults,
// then an optional YAML file, then the .env file and the environment, then
// command line flags. Each layer overrides the previous one.
type Config struct {
	// Seed drives every random draw. Zero seeds from the wall clock.
	Seed uint64 `yaml:"seed"`
	// InitialPoolSize of zero draws the size from [2, 12).
	InitialPoolSize int     `yaml:"initialPoolSize"`
	JoinRate        float64 `yaml:"joinRate"`
	DefectRate      float64 `yaml:"defectRate"`

	TickInterval time.Duration `yaml:"tickInterval"`
	// The dispatcher count is drawn from [DispatcherCountMin, DispatcherCountMax).
	DispatcherCountMin int    `yaml:"dispatcherCountMin"`
	DispatcherCountMax int    `yaml:"dispatcherCountMax"`
	BacklogPolicy      string `yaml:"backlogPolicy"`

	AskTimeout         time.Duration `yaml:"askTimeout"`
	InvitationAttempts int           `yaml:"invitationAttempts"`
	StopTimeout        time.Duration `yaml:"stopTimeout"`

	ChurnSchedule    string `yaml:"churnSchedule"`
	ReportSchedule   string `yaml:"reportSchedule"`
	OrderSchedule    string `yaml:"orderSchedule"`
	DeliverySchedule string `yaml:"deliverySchedule"`

	// HTTPPort of "" disables the operator API.
	HTTPPort string `yaml:"httpPort"`
	LogLevel string `yaml:"logLevel"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		JoinRate:           0.15,
		DefectRate:         0.15,
		TickInterval:       time.Second,
		DispatcherCountMin: 2,
		DispatcherCountMax: 12,
		BacklogPolicy:      services.LIFO.String(),
		AskTimeout:         500 * time.Millisecond,
		InvitationAttempts: 3,
		StopTimeout:        5 * time.Second,
		ChurnSchedule:      "@every 10s",
		ReportSchedule:     "* * * * * *",
		OrderSchedule:      "@every 2s",
		DeliverySchedule:   "@every 3s",
		HTTPPort:           "8080",
		LogLevel:           "info",
	}
}

// LoadConfig applies the YAML file at path (if any) and the environment on
// top of the defaults. A missing .env file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var err error
	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	setInt := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, perr := strconv.Atoi(strings.TrimSpace(v))
			err = errors.Join(err, envError(key, perr))
			if perr == nil {
				*dst = n
			}
		}
	}
	setUint := func(key string, dst *uint64) {
		if v, ok := lookup(key); ok {
			n, perr := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
			err = errors.Join(err, envError(key, perr))
			if perr == nil {
				*dst = n
			}
		}
	}
	setFloat := func(key string, dst *float64) {
		if v, ok := lookup(key); ok {
			f, perr := strconv.ParseFloat(strings.TrimSpace(v), 64)
			err = errors.Join(err, envError(key, perr))
			if perr == nil {
				*dst = f
			}
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok {
			d, perr := time.ParseDuration(strings.TrimSpace(v))
			err = errors.Join(err, envError(key, perr))
			if perr == nil {
				*dst = d
			}
		}
	}

	setUint("SEED", &c.Seed)
	setInt("INITIAL_POOL_SIZE", &c.InitialPoolSize)
	setFloat("JOIN_RATE", &c.JoinRate)
	setFloat("DEFECT_RATE", &c.DefectRate)
	setDuration("TICK_INTERVAL", &c.TickInterval)
	setInt("DISPATCHER_COUNT_MIN", &c.DispatcherCountMin)
	setInt("DISPATCHER_COUNT_MAX", &c.DispatcherCountMax)
	setString("BACKLOG_POLICY", &c.BacklogPolicy)
	setDuration("ASK_TIMEOUT", &c.AskTimeout)
	setInt("INVITATION_ATTEMPTS", &c.InvitationAttempts)
	setDuration("STOP_TIMEOUT", &c.StopTimeout)
	setString("CHURN_SCHEDULE", &c.ChurnSchedule)
	setString("REPORT_SCHEDULE", &c.ReportSchedule)
	setString("ORDER_SCHEDULE", &c.OrderSchedule)
	setString("DELIVERY_SCHEDULE", &c.DeliverySchedule)
	setString("HTTP_PORT", &c.HTTPPort)
	setString("LOG_LEVEL", &c.LogLevel)

	return err
}

func envError(key string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(key, err)
}

// ApplyFlags overrides the fields whose flags were set explicitly.
func (c *Config) ApplyFlags(flags *pflag.FlagSet) error {
	var err error
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}
	get := func(name string, read func() error) {
		if changed(name) {
			err = errors.Join(err, read())
		}
	}

	get("seed", func() (e error) { c.Seed, e = flags.GetUint64("seed"); return })
	get("initial-pool-size", func() (e error) { c.InitialPoolSize, e = flags.GetInt("initial-pool-size"); return })
	get("join-rate", func() (e error) { c.JoinRate, e = flags.GetFloat64("join-rate"); return })
	get("defect-rate", func() (e error) { c.DefectRate, e = flags.GetFloat64("defect-rate"); return })
	get("tick-interval", func() (e error) { c.TickInterval, e = flags.GetDuration("tick-interval"); return })
	get("dispatchers-min", func() (e error) { c.DispatcherCountMin, e = flags.GetInt("dispatchers-min"); return })
	get("dispatchers-max", func() (e error) { c.DispatcherCountMax, e = flags.GetInt("dispatchers-max"); return })
	get("backlog-policy", func() (e error) { c.BacklogPolicy, e = flags.GetString("backlog-policy"); return })
	get("ask-timeout", func() (e error) { c.AskTimeout, e = flags.GetDuration("ask-timeout"); return })
	get("http-port", func() (e error) { c.HTTPPort, e = flags.GetString("http-port"); return })
	get("log-level", func() (e error) { c.LogLevel, e = flags.GetString("log-level"); return })

	return err
}

// Validate fails fast on settings the simulation cannot start with.
func (c Config) Validate() error {
	var err error
	if c.InitialPoolSize < 0 || c.InitialPoolSize > pool.MaxBatch {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("initialPoolSize", c.InitialPoolSize, 0, pool.MaxBatch))
	}
	err = errors.Join(err,
		pool.ValidateRate("joinRate", c.JoinRate),
		pool.ValidateRate("defectRate", c.DefectRate))
	if c.TickInterval <= 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("tickInterval", c.TickInterval, "1ns", "unbounded"))
	}
	if c.DispatcherCountMin < 1 || c.DispatcherCountMax <= c.DispatcherCountMin {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("dispatcherCount",
			fmt.Errorf("range [%d, %d) must be non-empty and start at 1 or more", c.DispatcherCountMin, c.DispatcherCountMax)))
	}
	if _, perr := services.ParseBacklogPolicy(c.BacklogPolicy); perr != nil {
		err = errors.Join(err, perr)
	}
	if c.AskTimeout <= 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("askTimeout", c.AskTimeout, "1ns", "unbounded"))
	}
	if c.InvitationAttempts < 1 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("invitationAttempts", c.InvitationAttempts, 1, "unbounded"))
	}
	if c.StopTimeout <= 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("stopTimeout", c.StopTimeout, "1ns", "unbounded"))
	}
	for name, schedule := range map[string]string{
		"churnSchedule":    c.ChurnSchedule,
		"reportSchedule":   c.ReportSchedule,
		"orderSchedule":    c.OrderSchedule,
		"deliverySchedule": c.DeliverySchedule,
	} {
		if strings.TrimSpace(schedule) == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError(name))
		}
	}
	if _, perr := zapcore.ParseLevel(c.LogLevel); perr != nil {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("logLevel", perr))
	}
	return err
}

// YAML renders the configuration in the format LoadConfig reads.
func (c Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
