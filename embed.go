package adminbot

import "embed"

// MigrationsFS embeds the SQL migrations for the operator session store.
//
//go:embed migrations
var MigrationsFS embed.FS
