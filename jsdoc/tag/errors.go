package tag

import "errors"

var (
	// ErrUnknownTag is returned for tag kinds that are not recognised.
	ErrUnknownTag = errors.New("unknown tag")

	// ErrMissingName is returned when a tag that requires a name has none.
	ErrMissingName = errors.New("requires a name")

	// ErrInvalidAccessValue is returned when @access is not public or private.
	ErrInvalidAccessValue = errors.New("@access only supports public, private")

	// ErrMissingDescriptionOrType is returned for an empty @return.
	ErrMissingDescriptionOrType = errors.New("@return requires a description or a type")

	// ErrMissingErrorMessage is returned for an empty @throws.
	ErrMissingErrorMessage = errors.New("@throws requires an error message")

	// ErrEmptyTodoList is returned when @todo yields no items.
	ErrEmptyTodoList = errors.New("@todo requires items you need to do")
)
