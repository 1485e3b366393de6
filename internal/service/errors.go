package service

import "errors"

// Error taxonomy surfaced to the transport layer. Write-path failures keep
// enough detail for logging via %w wrapping; read-path reporting never
// propagates these (it degrades to empty results instead).
var (
	ErrValidation         = errors.New("validation")          // 400
	ErrInvalidQuantity    = errors.New("invalid quantity")    // 400
	ErrCustomerResolution = errors.New("customer resolution") // 400
	ErrNotFound           = errors.New("not found")           // 404
	ErrPersistence        = errors.New("persistence")         // 500
	ErrOrderPersistence   = errors.New("order persistence")   // 500
)
