package model

import "errors"

// ErrProvider classifies authentication and search failures at the provider
// boundary. A provider error aborts the whole run and is never retried.
var ErrProvider = errors.New("provider error")
