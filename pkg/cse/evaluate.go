package cse

import (
	"context"

	"github.com/fernandonpa/cs3513-rpal/pkg/ast"
)

// Evaluate builds the control structure for a standardized tree and runs
// it to completion, returning the final value (the only externally
// observable effect; Print is identity, see builtins.go).
func Evaluate(ctx context.Context, standardized *ast.Node) (Value, error) {
	root, err := NewFactory().Build(standardized)
	if err != nil {
		return nil, err
	}
	return NewMachine(root).Run(ctx)
}
