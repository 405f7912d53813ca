//go:build tools

package main

// Pin the swagger docs generator so `go run github.com/swaggo/swag/cmd/swag`
// resolves to a versioned tool.
import (
	_ "github.com/swaggo/swag"
)
