// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/kindle/internal/adapters/activators"
	_ "go.trai.ch/kindle/internal/adapters/cas"
	_ "go.trai.ch/kindle/internal/adapters/config"
	_ "go.trai.ch/kindle/internal/adapters/fs"
	_ "go.trai.ch/kindle/internal/adapters/interp"
	_ "go.trai.ch/kindle/internal/adapters/logger"
	_ "go.trai.ch/kindle/internal/adapters/telemetry"
	_ "go.trai.ch/kindle/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/kindle/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/kindle/internal/app"
	_ "go.trai.ch/kindle/internal/engine/activation"
	_ "go.trai.ch/kindle/internal/engine/scheduler"
)
