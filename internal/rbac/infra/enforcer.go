package infra

import (
	"fmt"

	"github.com/casbin/casbin/v2"
)

// NewEnforcer builds a role based enforcer from a model file and a CSV
// policy file.
func NewEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	e, err := casbin.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return nil, fmt.Errorf("load rbac policy: %w", err)
	}
	return e, nil
}
