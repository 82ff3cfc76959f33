package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	IDs      IDsConfig      `yaml:"ids"`
	Seed     SeedConfig     `yaml:"seed"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ApplicationName string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"messenger"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// IDsConfig holds identifier generation settings.
type IDsConfig struct {
	// NodeID identifies this process in snowflake message ids. Processes
	// writing to the same database must use distinct values.
	NodeID int64 `yaml:"node_id" env:"IDS_NODE_ID" env-default:"1"`
}

// SeedConfig holds settings for the demo data seeder.
type SeedConfig struct {
	EmailDomain string `yaml:"email_domain" env:"SEED_EMAIL_DOMAIN" env-default:"example.com"`
}
