package crudguard

import (
	"github.com/goliatone/go-crud"
	"github.com/macromate/go-macromate/pkg/types"
)

var (
	readOperations  = []crud.CrudOperation{crud.OpRead, crud.OpList}
	writeOperations = []crud.CrudOperation{
		crud.OpCreate, crud.OpCreateBatch,
		crud.OpUpdate, crud.OpUpdateBatch,
		crud.OpDelete, crud.OpDeleteBatch,
	}
)

// PolicyMap assigns an access action to each crud operation.
type PolicyMap map[crud.CrudOperation]types.PolicyAction

// DefaultPolicyMap sends list and show through readAction and every mutation,
// batch variants included, through writeAction.
func DefaultPolicyMap(readAction, writeAction types.PolicyAction) PolicyMap {
	m := make(PolicyMap, len(readOperations)+len(writeOperations))
	for _, op := range readOperations {
		m[op] = readAction
	}
	for _, op := range writeOperations {
		m[op] = writeAction
	}
	return m
}

// ReadOnlyPolicyMap maps only list and show. Mutations resolve through the
// adapter fallback, or fail when none is set.
func ReadOnlyPolicyMap(readAction types.PolicyAction) PolicyMap {
	m := make(PolicyMap, len(readOperations))
	for _, op := range readOperations {
		m[op] = readAction
	}
	return m
}

func (m PolicyMap) action(op crud.CrudOperation) (types.PolicyAction, bool) {
	act, ok := m[op]
	return act, ok && act != ""
}

func (m PolicyMap) clone() PolicyMap {
	if len(m) == 0 {
		return nil
	}
	out := make(PolicyMap, len(m))
	for op, act := range m {
		out[op] = act
	}
	return out
}
