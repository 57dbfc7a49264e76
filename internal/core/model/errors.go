package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeNotFound = errors.New("edge not found")
	ErrNoPath       = errors.New("no path between nodes")
	ErrExtraction   = errors.New("extraction failed")
	ErrUpstream     = errors.New("upstream request failed")
)

// MalformedInputError reports extractor output missing required columns.
type MalformedInputError struct {
	Missing []string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: missing required columns: %s", strings.Join(e.Missing, ", "))
}

// StoreWriteError wraps a failed write against the graph store.
type StoreWriteError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store write %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// StoreReadError wraps a failed read against the graph store.
type StoreReadError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("store read %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreReadError) Unwrap() error { return e.Err }
