package interfaces

import "fmt"

// NetworkError wraps a transport or non-2xx failure from the fetch
// collaborator. Transient: aborts the current scan/extract step only.
type NetworkError struct {
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ExtractionError means a detail page is missing a required structural
// element. The item is skipped and logged; the batch continues.
type ExtractionError struct {
	URL     string
	Missing string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: missing %s", e.URL, e.Missing)
}

// TemplateStructureError means the document template lacks a required
// anchor marker. Fatal for the whole render step.
type TemplateStructureError struct {
	Marker string
}

func (e *TemplateStructureError) Error() string {
	return fmt.Sprintf("template: marker %q not found", e.Marker)
}

// RenderError means the document-to-PDF conversion failed or produced no
// readable output. Aborts delivery for that document only.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// DeliveryError means the messaging channel rejected a send, or the retry
// budget was exhausted.
type DeliveryError struct {
	Attempts int
	Err      error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
