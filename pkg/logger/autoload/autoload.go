// Package autoload initializes the global logger from environment
// configuration as an import side effect.
package autoload

import (
	configx "github.com/greenmark-ai/greenmark/pkg/config"
	logx "github.com/greenmark-ai/greenmark/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
