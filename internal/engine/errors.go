package engine

import "errors"

// Validation failures returned by engine operations. Every error is
// detected before any mutation: a rejected action leaves the
// PlayerState untouched.
var (
	// ErrInvalidAmount indicates a transfer request with a non-positive amount.
	ErrInvalidAmount = errors.New("amount must be a positive integer")

	// ErrNoSourceResource indicates the source inventory holds none of the
	// requested resource.
	ErrNoSourceResource = errors.New("no source resource available")

	// ErrCrateFull indicates the target crate has no remaining capacity.
	ErrCrateFull = errors.New("crate is full")

	// ErrCrateEmpty indicates an unload from a crate holding nothing.
	ErrCrateEmpty = errors.New("crate is empty")

	// ErrNotReady indicates a collect on a producer that has no yield waiting.
	ErrNotReady = errors.New("producer is not ready")

	// ErrInvalidState indicates an illegal state transition, e.g. beginning
	// travel on a vehicle that is already traveling.
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrVehicleLocked indicates an operation on a vehicle kind the player
	// has not unlocked yet.
	ErrVehicleLocked = errors.New("vehicle kind is locked")

	// ErrUnknownResourceType indicates a resource type absent from the
	// game's catalog.
	ErrUnknownResourceType = errors.New("unknown resource type")

	// ErrNothingSellable indicates a sale where the held amount is below one
	// full conversion unit.
	ErrNothingSellable = errors.New("nothing sellable")

	// ErrUnknownProducer indicates a producer ID not present in the player state.
	ErrUnknownProducer = errors.New("unknown producer")

	// ErrUnknownVehicle indicates a vehicle ID not present in the player state.
	ErrUnknownVehicle = errors.New("unknown vehicle")

	// ErrInsufficientFunds indicates a purchase the player cannot afford.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
