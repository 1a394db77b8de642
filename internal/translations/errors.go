package translations

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound     = errors.New("translations: record not found")
	ErrLanguageNotFound   = errors.New("translations: language not found")
	ErrLanguageExists     = errors.New("translations: language code already exists")
	ErrKeyNotFound        = errors.New("translations: dictionary key not found")
	ErrKeyExists          = errors.New("translations: dictionary key already exists")
	ErrKeyRequired        = errors.New("translations: dictionary key is required")
	ErrLangRequired       = errors.New("translations: language code is required")
	ErrValueRequired      = errors.New("translations: value is required")
	ErrEntityRequired     = errors.New("translations: entity reference is required")
	ErrComponentsRequired = errors.New("translations: component field accessor is required")
)

// RecordNotFoundError carries the translation record key that missed.
type RecordNotFoundError struct {
	EntityType string
	Key        string
	Field      string
	Lang       string
}

func (e *RecordNotFoundError) Error() string {
	if e == nil {
		return ErrRecordNotFound.Error()
	}
	return fmt.Sprintf("%s: %s/%s.%s[%s]", ErrRecordNotFound.Error(), e.EntityType, e.Key, e.Field, e.Lang)
}

func (e *RecordNotFoundError) Unwrap() error {
	return ErrRecordNotFound
}

// KeyNotFoundError carries the dictionary key that missed.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	if e == nil || e.Key == "" {
		return ErrKeyNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrKeyNotFound.Error(), e.Key)
}

func (e *KeyNotFoundError) Unwrap() error {
	return ErrKeyNotFound
}
