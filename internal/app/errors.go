// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import "errors"

// ErrUnknownEnvironment is returned by [New] when the configured environment
// is not defined by any source.
var ErrUnknownEnvironment = errors.New("environment is not defined by any source")
