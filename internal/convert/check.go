package convert

import (
	"fmt"

	"github.com/chewxy/sexp"
)

// Check parses emitted KiCad text with an independent s-expression reader
// and requires exactly one top-level list
func Check(text string) error {
	exprs, err := sexp.ParseString(text)
	if err != nil {
		return fmt.Errorf("failed to parse s-expression: %w", err)
	}
	if len(exprs) != 1 {
		return fmt.Errorf("expected one top-level expression, got %d", len(exprs))
	}
	if exprs[0].IsLeaf() {
		return fmt.Errorf("top-level expression is not a list")
	}
	return nil
}
