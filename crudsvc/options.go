package crudsvc

import (
	"fmt"

	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	"github.com/macromate/go-macromate/crudguard"
	"github.com/macromate/go-macromate/pkg/types"
)

// GuardAdapter captures the subset of crudguard.Adapter we rely on so tests can
// swap in fakes.
type GuardAdapter interface {
	Enforce(in crudguard.GuardInput) (crudguard.GuardResult, error)
}

type serviceOptions struct {
	logger types.Logger
}

// ServiceOption customizes CRUD service behaviour.
type ServiceOption func(*serviceOptions)

// WithLogger wires a logger for service diagnostics.
func WithLogger(logger types.Logger) ServiceOption {
	return func(cfg *serviceOptions) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func applyOptions(opts []ServiceOption) serviceOptions {
	cfg := serviceOptions{
		logger: types.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func notSupported(op crud.CrudOperation) error {
	return goerrors.New(
		fmt.Sprintf("macromate: crud operation %s disabled for this resource", op),
		goerrors.CategoryValidation,
	).WithCode(goerrors.CodeBadRequest)
}

func unavailable(what string) error {
	return goerrors.New(what+" unavailable", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
}

// ReadOnlyRoutes disables every mutating route on a go-crud controller.
func ReadOnlyRoutes() crud.RouteConfig {
	disabled := crud.RouteOptions{Enabled: crud.BoolPtr(false)}
	return crud.RouteConfig{
		Operations: map[crud.CrudOperation]crud.RouteOptions{
			crud.OpCreate:      disabled,
			crud.OpUpdate:      disabled,
			crud.OpDelete:      disabled,
			crud.OpCreateBatch: disabled,
			crud.OpUpdateBatch: disabled,
			crud.OpDeleteBatch: disabled,
		},
	}
}
