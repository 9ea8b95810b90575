package data

import (
	_ "embed"
)

// SeedDrones is the sample drone catalog loaded by cmd/seed, a JSON array of create payloads
//
//go:embed seed/drones.json
var SeedDrones []byte
