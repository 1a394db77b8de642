package content

import (
	"errors"
	"fmt"
)

var (
	ErrPageNotFound      = errors.New("content: page not found")
	ErrBlockNotFound     = errors.New("content: block not found")
	ErrComponentNotFound = errors.New("content: component not found")
	ErrSlugRequired      = errors.New("content: slug is required")
	ErrSlugInvalid       = errors.New("content: slug contains invalid characters")
	ErrSlugExists        = errors.New("content: slug already exists")
	ErrSlugImmutable     = errors.New("content: slug cannot be changed")
	ErrNameRequired      = errors.New("content: name is required")
	ErrPageRequired      = errors.New("content: page id required")
	ErrBlockTypeInvalid  = errors.New("content: unknown block type")
	ErrEntityTypeInvalid = errors.New("content: unknown component entity type")
	ErrFieldInvalid      = errors.New("content: unknown component field")
)

// PageNotFoundError carries the slug or id that missed.
type PageNotFoundError struct {
	Key string
}

func (e *PageNotFoundError) Error() string {
	if e == nil || e.Key == "" {
		return ErrPageNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrPageNotFound.Error(), e.Key)
}

func (e *PageNotFoundError) Unwrap() error {
	return ErrPageNotFound
}

// BlockNotFoundError carries the block id that missed.
type BlockNotFoundError struct {
	Key string
}

func (e *BlockNotFoundError) Error() string {
	if e == nil || e.Key == "" {
		return ErrBlockNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrBlockNotFound.Error(), e.Key)
}

func (e *BlockNotFoundError) Unwrap() error {
	return ErrBlockNotFound
}

// ComponentNotFoundError carries the entity type and id that missed.
type ComponentNotFoundError struct {
	EntityType string
	Key        string
}

func (e *ComponentNotFoundError) Error() string {
	if e == nil {
		return ErrComponentNotFound.Error()
	}
	return fmt.Sprintf("%s: %s/%s", ErrComponentNotFound.Error(), e.EntityType, e.Key)
}

func (e *ComponentNotFoundError) Unwrap() error {
	return ErrComponentNotFound
}
