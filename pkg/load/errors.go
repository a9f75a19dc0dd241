package load

import "github.com/pkg/errors"

var (
	// ErrInvalidMapping means a key mapping is neither a plain column name
	// nor a complete (property, column) pair.
	ErrInvalidMapping = errors.New("key mapping must be a column name or a (property, column) pair")

	// ErrInvalidLabel means a node label is empty or not a single token.
	ErrInvalidLabel = errors.New("label must be a single non-empty token")

	// ErrInvalidRelType means a relationship type is empty or not a single token.
	ErrInvalidRelType = errors.New("relationship type must be a single non-empty token")

	// ErrNoCount means a merge statement returned no scalar count row.
	ErrNoCount = errors.New("statement returned no scalar count")
)
