package interfaces

import "context"

// Translator is the machine-translation collaborator. Translate never
// propagates an error: any failure returns the input text unchanged.
type Translator interface {
	Translate(ctx context.Context, text string) string
}
