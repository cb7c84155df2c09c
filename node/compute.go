package node

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatgui/pyexpr/platform/types"
)

// Compute writes the value of plug into block, evaluating first when the
// node is Dirty. The returned flag is the success of this read: false when
// the evaluation failed or when plug carries a type other than the active
// output type. The error is the re-raised failure of a verbose evaluation
// triggered by this call, or ErrUnknownPlug.
func (n *Node) Compute(ctx context.Context, plug Plug, block DataBlock) (bool, error) {
	evalErr := n.Evaluate(ctx)
	if errors.Is(evalErr, ErrDestroyed) {
		return false, evalErr
	}

	switch plug.Output {
	case Succeeded:
		block.SetBool(Succeeded, n.succeeded)
		block.SetClean(plug)
		return true, evalErr
	case ErrorString:
		block.SetString(ErrorString, n.errorMessage)
		block.SetClean(plug)
		return true, evalErr
	}

	t, ok := plug.Output.Type()
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownPlug, plug)
	}

	success := n.succeeded
	value := n.result
	if t != n.outputType {
		if n.verbose {
			n.logger.WithGroup("Compute").WarnContext(ctx, "Querying wrong output type",
				"plug", plug, "outputType", n.outputType)
		}
		success = false
		value = types.Zero(t)
	}

	switch t {
	case types.Int:
		block.SetInt(plug.Output, value.Int)
		block.SetClean(plug)
	case types.Double:
		block.SetDouble(plug.Output, value.Double)
		block.SetClean(plug)
	case types.String:
		block.SetString(plug.Output, value.String)
		block.SetClean(plug)
	case types.IntArray:
		b := block.ArrayBuilder(plug.Output, len(value.Ints))
		for i, v := range value.Ints {
			b.AddInt(i, v)
		}
		b.Commit()
	case types.DoubleArray:
		b := block.ArrayBuilder(plug.Output, len(value.Doubles))
		for i, v := range value.Doubles {
			b.AddDouble(i, v)
		}
		b.Commit()
	case types.StringArray:
		b := block.ArrayBuilder(plug.Output, len(value.Strings))
		for i, v := range value.Strings {
			b.AddString(i, v)
		}
		b.Commit()
	}

	return success, evalErr
}
