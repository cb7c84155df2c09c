package node

import (
	"context"
	"fmt"

	"github.com/gatgui/pyexpr/platform/attribute"
	"github.com/gatgui/pyexpr/platform/script"
	"github.com/gatgui/pyexpr/platform/types"
)

// Evaluate refreshes the cached result when the node is Dirty and leaves it
// Clean, whether or not the expression succeeded. A runtime failure is
// returned only in verbose mode; otherwise it is recorded and contained.
func (n *Node) Evaluate(ctx context.Context) error {
	if n.destroyed {
		return ErrDestroyed
	}
	if !n.needsEval {
		return nil
	}
	logger := n.logger.WithGroup("Evaluate")

	active := n.outputType
	n.result = types.Zero(active)

	attrs := n.host.Attributes()
	bindings := n.serializer.Bindings(attrs, attribute.Settings{
		Units:   n.displayUnits(),
		Verbose: n.verbose,
	})
	unit := script.NewUnit(script.FunctionName(n.name), bindings, n.expression, n.serializer.Symbols(attrs)...)

	if n.verbose {
		logger.InfoContext(ctx, "Declare function:\n"+unit.Source())
	}

	var raised error
	if err := n.env.Declare(ctx, unit); err != nil {
		n.succeeded = false
		n.errorMessage = err.Error()
	} else {
		if n.verbose {
			logger.InfoContext(ctx, fmt.Sprintf("Evaluating %s expression", active))
		}

		value, err := n.env.Invoke(ctx, unit, active)
		if n.verbose {
			n.succeeded = err == nil
		} else {
			n.succeeded = err == nil && n.env.ErrorMessage() == ""
		}

		switch {
		case n.succeeded:
			n.result = value
			n.errorMessage = ""
		case err != nil:
			n.errorMessage = err.Error()
			if n.verbose {
				raised = fmt.Errorf("%w: %w", ErrEvaluationFailed, err)
			}
		default:
			n.errorMessage = n.env.ErrorMessage()
		}
	}

	if !n.succeeded {
		logger.ErrorContext(ctx, n.errorMessage, "outputType", active)
	}
	n.needsEval = false
	return raised
}
