package registry

import "errors"

// ErrUnsupportedValue is returned by [FromAny] and [Value.UnmarshalJSON] when
// the input holds data that has no configuration-value equivalent (lists,
// structs, channels and the like).
var ErrUnsupportedValue = errors.New("unsupported configuration value")
