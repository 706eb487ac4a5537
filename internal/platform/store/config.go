package store

import "time"

// Config lists each backend; a backend opens only when Enabled
type Config struct {
	// AppName is reported to redis and clickhouse as the client name
	AppName string

	PG  PGConfig
	CH  CHConfig
	RDS RedisConfig
}

// PGConfig configures the subscriptions database
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32

	LogSQL bool
	Slow   time.Duration

	// ConnectRetries and PingTimeout bound the boot wait; 20 and 3s when zero
	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig configures the telemetry warehouse
type CHConfig struct {
	Enabled bool
	URL     string
}

// RedisConfig configures the shared cache; URL wins over Addr and DB
type RedisConfig struct {
	Enabled     bool
	URL         string
	Addr        string
	DB          int
	PingTimeout time.Duration
}
