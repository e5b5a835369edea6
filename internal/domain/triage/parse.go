package triage

import (
	"errors"
	"fmt"

	"github.com/tricare/tricare/internal/platform/llm"
)

// ErrMalformedResponse reports model output that could not be interpreted as
// the stage's expected JSON document. The raw output is never attached to
// the error so it cannot leak to API clients.
var ErrMalformedResponse = errors.New("malformed upstream response")

// decodeStage parses model output into dst: strict parse first, then the
// balanced-brace recovery in the llm package, then a fatal stage error.
func decodeStage(raw string, dst interface{}) error {
	if err := llm.DecodeJSON(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
