package configs

import "time"

// HTTP configures the admin/serving HTTP listener.
type HTTP struct {
	// Port is the TCP port to bind. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`

	// ShutdownTimeout bounds graceful shutdown on termination.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
