package migrations

import "embed"

// FS embeds the SQL migration files stored in this directory. The
// golang-migrate library reads them through the iofs source driver.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version the application requires. Migrate targets
// this version on startup; each step is an idempotent forward migration.
const Version = 3
