package node

import "errors"

var (
	ErrUnknownPlug       = errors.New("unknown plug")
	ErrNoEngine          = errors.New("no interpreter engine")
	ErrNoHost            = errors.New("no host")
	ErrNoTimeSource      = errors.New("no time source")
	ErrEvaluationFailed  = errors.New("expression evaluation failed")
	ErrDestroyed         = errors.New("node destroyed")
	ErrInvalidOutputType = errors.New("invalid output type")
)
