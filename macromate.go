package macromate

import "github.com/macromate/go-macromate/service"

// Re-export the service package entry point so consumers can do
// `macromate.New(...)` without importing internal wiring helpers.
type (
	Service  = service.Service
	Config   = service.Config
	Commands = service.Commands
	Queries  = service.Queries
)

// New constructs the macromate runtime using the provided configuration.
func New(cfg Config) *Service {
	return service.New(cfg)
}
