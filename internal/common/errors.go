// Package common defines shared helpers and sentinel errors used across
// client and server layers of SkillSwap. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal        = errors.New("internal error")
	ErrorInvalidArgument = errors.New("invalid argument")
)
