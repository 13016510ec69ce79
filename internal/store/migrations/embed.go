// Package migrations embeds the roster database schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
