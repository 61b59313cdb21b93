// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pinmerge/internal/adapters/config"
	_ "go.trai.ch/pinmerge/internal/adapters/envfile"
	_ "go.trai.ch/pinmerge/internal/adapters/logger"
	// Register app and engine nodes.
	_ "go.trai.ch/pinmerge/internal/app"
	_ "go.trai.ch/pinmerge/internal/engine/envspec"
	_ "go.trai.ch/pinmerge/internal/engine/resolver"
)
