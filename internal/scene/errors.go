package scene

import "errors"

var (
	ErrNoEngine        = errors.New("no interpreter engine")
	ErrNotFound        = errors.New("not found")
	ErrExists          = errors.New("name already in use")
	ErrReservedName    = errors.New("reserved attribute name")
	ErrNotMessage      = errors.New("not a message attribute")
	ErrNotArray        = errors.New("not an array attribute")
	ErrIsArray         = errors.New("array attribute")
	ErrUnknownCallback = errors.New("unknown time-change callback")
	ErrNoSuchElement   = errors.New("no such element")
)
