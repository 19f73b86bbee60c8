package manifest

import "fmt"

// NotFoundError indicates the manifest file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("manifest not found: %s", e.Path)
}

// InvalidError indicates the manifest content is structurally unusable
// (malformed document, missing 'screens', malformed screen definition).
type InvalidError struct {
	Reason string
	Err    error
}

func (e *InvalidError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid manifest: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid manifest: %s", e.Reason)
}

func (e *InvalidError) Unwrap() error {
	return e.Err
}
