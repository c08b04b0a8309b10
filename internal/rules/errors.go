package rules

import "errors"

// ErrConfiguration indicates the rule document is malformed or internally
// inconsistent. It is fatal at startup; the service refuses to run with a
// partial rule set.
var ErrConfiguration = errors.New("invalid rule configuration")
