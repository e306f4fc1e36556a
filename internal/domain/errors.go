package domain

import "errors"

// Request and per-asset errors.
var (
	// ErrValidation is returned when a request is missing or has invalid fields.
	ErrValidation = errors.New("validation error")

	// ErrCollaboratorUnavailable is returned when the crate service cannot serve a lookup.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

	// ErrAssetQuoteUnavailable marks a single asset that could not be quoted.
	ErrAssetQuoteUnavailable = errors.New("asset quote unavailable")

	// ErrTransactionBuild marks a single asset whose swap transaction could not be built.
	ErrTransactionBuild = errors.New("transaction build failed")

	// ErrNoSupportedAssets is returned when every asset in a crate failed.
	ErrNoSupportedAssets = errors.New("no supported assets")
)
