package od

import "github.com/cockroachdb/errors"

var (
	ErrEdsFormat         = errors.New("unsupported EDS storage format")
	ErrIndexNotFound     = errors.New("index does not exist in object dictionary")
	ErrSubNotExist       = errors.New("sub-index does not exist in object dictionary")
	ErrUnknownObjectType = errors.New("unknown object type")
	ErrNotAList          = errors.New("entry is not a RECORD or an ARRAY")
)
