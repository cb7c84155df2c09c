package node

import (
	"errors"
	"fmt"
)

// Duplicate creates a copy of the node called name in host. The copy gets
// its own identity and environment; inputs, cached result, Dirty flag and
// diagnostics are copied as they are, and a live time-change subscription
// is replicated. Nothing is evaluated.
func (n *Node) Duplicate(name string, host Host) (*Node, error) {
	if n.destroyed {
		return nil, ErrDestroyed
	}

	opts := []FunctionalOption{
		WithEngine(n.engine),
		WithLogger(n.baseLogger),
		WithUnits(n.units),
		WithExpression(n.expression),
		WithOutputType(n.outputType),
		WithVerbose(n.verbose),
	}
	if n.timeSource != nil {
		opts = append(opts, WithTimeSource(n.timeSource))
	}

	dup, err := New(name, host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate %s: %w", n.name, err)
	}

	dup.needsEval = n.needsEval
	dup.result = n.result.Clone()
	dup.succeeded = n.succeeded
	dup.errorMessage = n.errorMessage

	if n.subscribed {
		if err := dup.SetEvalOnTimeChanged(true); err != nil {
			return nil, errors.Join(err, dup.Destroy())
		}
	}
	return dup, nil
}

// Destroy releases the time-change subscription and the interpreter
// environment. Destroying twice is a no-op.
func (n *Node) Destroy() error {
	if n.destroyed {
		return nil
	}
	n.destroyed = true

	return errors.Join(n.unsubscribe(), n.env.Close())
}
