// Package extract obtains the text layer of a statement PDF. The statement
// parser itself is pure; this package is the one upstream collaborator that
// performs I/O.
package extract

import "context"

// TextExtractor converts PDF bytes into the plain text the statement parser
// consumes. Implementations may call external services.
type TextExtractor interface {
	ExtractText(ctx context.Context, pdfBytes []byte) (string, error)
}
