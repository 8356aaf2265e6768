package shared

import (
	"errors"
	"fmt"
)

// ErrDataLoadFailed is the single failure surfaced by the remote data loader.
// The failing stage is logged but never exposed past the loader.
var ErrDataLoadFailed = errors.New("unknown network error, failed to load")

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Join errors

// JoinMissError reports an owned instance whose archetype has no entry in the static dictionary
type JoinMissError struct {
	*DomainError
	Kind        string
	InstanceID  int64
	ArchetypeID int64
}

func NewJoinMissError(kind string, instanceID, archetypeID int64) *JoinMissError {
	return &JoinMissError{
		DomainError: NewDomainError(fmt.Sprintf("%s %d has no archetype %d", kind, instanceID, archetypeID)),
		Kind:        kind,
		InstanceID:  instanceID,
		ArchetypeID: archetypeID,
	}
}

// Stage errors

// StageError records which loader stage failed and why. It stays inside the loader.
type StageError struct {
	*DomainError
	Stage string
	Cause error
}

func NewStageError(stage string, cause error) *StageError {
	return &StageError{
		DomainError: NewDomainError(fmt.Sprintf("stage %s failed: %v", stage, cause)),
		Stage:       stage,
		Cause:       cause,
	}
}

func (e *StageError) Unwrap() error {
	return e.Cause
}
