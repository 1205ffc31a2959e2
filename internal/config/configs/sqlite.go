package configs

import "fmt"

// SQLite configures the embedded database backing the creative store.
type SQLite struct {
	// Path is the database file location. ":memory:" keeps the catalog
	// in memory, which is only useful for tests.
	Path string `env:"PATH" envDefault:"./data/ads.db"`

	// RunMigrations controls whether schema migrations are executed on
	// startup. Only honoured by main.
	RunMigrations bool `env:"RUN_MIGRATIONS" envDefault:"true"`

	// BatchSize bounds how many creative ads are written per
	// transaction. Must be positive.
	BatchSize int `env:"BATCH_SIZE" envDefault:"50"`
}

// DSN returns the driver connection string. Foreign keys are enforced and
// WAL mode is enabled so readers do not block the single writer.
func (c SQLite) DSN() string {
	return fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL", c.Path)
}
