package sniff

import (
	"github.com/pkg/errors"
)

// Sentinel errors returned by Sniff. Callers match them with errors.Is. Once
// the sample has been examined, the wrapped message carries its size and,
// after scoring, the number of candidates considered, never content from the
// input; ErrInvalidOption is raised before that and names only the option.
var (
	// ErrEmptyInput means the sample held zero bytes after comment stripping.
	ErrEmptyInput = errors.New("empty input")

	// ErrNoDialectFound means every candidate scored zero and even the
	// fallback dialect produced no rows.
	ErrNoDialectFound = errors.New("no dialect found")

	// ErrTokenizer means the tokenizer failed on the final parse. That parse
	// runs in flexible mode, which does not fail, so this is defensive.
	ErrTokenizer = errors.New("tokenizer failure")

	// ErrInvalidOption means the options are unusable or conflict with each
	// other (for example a forced quote equal to the forced delimiter).
	ErrInvalidOption = errors.New("invalid option")
)
