// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/nanoindent/internal/adapters/cas"
	_ "go.trai.ch/nanoindent/internal/adapters/config"
	_ "go.trai.ch/nanoindent/internal/adapters/fs"
	_ "go.trai.ch/nanoindent/internal/adapters/logger"
	_ "go.trai.ch/nanoindent/internal/adapters/telemetry"
	_ "go.trai.ch/nanoindent/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/nanoindent/internal/adapters/transport"
	// Register algorithm, app and engine nodes.
	_ "go.trai.ch/nanoindent/internal/algorithms"
	_ "go.trai.ch/nanoindent/internal/app"
	_ "go.trai.ch/nanoindent/internal/engine/pipeline"
)
