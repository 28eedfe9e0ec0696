// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize caps user-supplied CUE files. Configuration files are
// tiny; anything larger is either corrupt or hostile.
const DefaultMaxFileSize int64 = 1 << 20 // 1 MiB

// Option customizes a parse operation.
type Option func(*options)

type options struct {
	filename    string
	maxFileSize int64
	concrete    bool
}

func defaultOptions() options {
	return options{maxFileSize: DefaultMaxFileSize}
}

// WithFilename sets the filename reported in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithConcrete requires all fields to be concrete after unification.
// Leave unset for schemas whose fields are optional.
func WithConcrete() Option {
	return func(o *options) { o.concrete = true }
}

// ParseResult contains the result of a successful parse.
type ParseResult[T any] struct {
	// Value is the decoded Go struct.
	Value *T

	// Unified is the unified CUE value, kept for callers that need to
	// inspect metadata beyond the decoded struct.
	Unified cue.Value
}

// ParseAndDecodeString unifies user data with an embedded schema and decodes
// the result:
//
//  1. Compile the embedded schema and look up schemaPath (e.g. "#Config")
//  2. Compile the user data and unify with the schema root
//  3. Validate and decode into T
//
// Schema compilation failures are internal errors (the schema ships with the
// binary); user data failures are formatted with FormatError.
func ParseAndDecodeString[T any](schema string, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	filename := o.filename
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckFileSize(data, o.maxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	unified := schemaRoot.Unify(userValue)

	if o.concrete {
		if err := unified.Validate(cue.Concrete(true)); err != nil {
			return nil, FormatError(err, filename)
		}
	} else if err := unified.Validate(); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &ParseResult[T]{Value: &result, Unified: unified}, nil
}
