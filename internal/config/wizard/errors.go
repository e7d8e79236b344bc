package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errGroupRequired = errors.New("group is required")
	errGroupInvalid  = errors.New("group must be 1-40 lowercase alphanumeric characters or hyphens, starting with a letter and not ending with a hyphen")
)
