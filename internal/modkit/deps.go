// Package modkit provides module wiring and core deps
package modkit

import (
	"net/http"

	"pixivrank/internal/platform/config"
	"pixivrank/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// HTTP is the process-wide client; nil lets a module build its own from config
	HTTP *http.Client
}
