package configs

import "time"

// Catalog configures the remote catalog synchronizer.
type Catalog struct {
	// URL is the catalog document endpoint.
	URL string `env:"URL" envDefault:"https://ads-static.example.com/v4/catalog"`

	// RefreshInterval is the nominal delay between successful syncs.
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"2h"`

	// RetryCeiling bounds the exponential backoff between failed
	// download attempts.
	RetryCeiling time.Duration `env:"RETRY_CEILING" envDefault:"1h"`

	// RequestTimeout bounds a single catalog download.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}
