package validate

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/uploadkit/pkg/bytesize"
)

// Kind identifies a check for message table lookups.
type Kind string

const (
	KindMaxSize            Kind = "max_size"
	KindMinSize            Kind = "min_size"
	KindMaxWidth           Kind = "max_width"
	KindMinWidth           Kind = "min_width"
	KindMaxHeight          Kind = "max_height"
	KindMinHeight          Kind = "min_height"
	KindMIMETypeInclusion  Kind = "mime_type_inclusion"
	KindMIMETypeExclusion  Kind = "mime_type_exclusion"
	KindExtensionInclusion Kind = "extension_inclusion"
	KindExtensionExclusion Kind = "extension_exclusion"
)

// MessageFunc produces a failure message from the bound passed to the check:
// an int64 for size checks, an int for dimension checks, a []string for
// inclusion/exclusion checks.
type MessageFunc func(bound any) string

// defaultMessages returns a fresh built-in message table. Each validator
// owns a copy, so per-instance overrides never leak across validators.
func defaultMessages() map[Kind]MessageFunc {
	return map[Kind]MessageFunc{
		KindMaxSize: func(bound any) string {
			return fmt.Sprintf("size must not be greater than %s", bytesize.Format(uint64(bound.(int64))))
		},
		KindMinSize: func(bound any) string {
			return fmt.Sprintf("size must not be less than %s", bytesize.Format(uint64(bound.(int64))))
		},
		KindMaxWidth: func(bound any) string {
			return fmt.Sprintf("width must not be greater than %dpx", bound.(int))
		},
		KindMinWidth: func(bound any) string {
			return fmt.Sprintf("width must not be less than %dpx", bound.(int))
		},
		KindMaxHeight: func(bound any) string {
			return fmt.Sprintf("height must not be greater than %dpx", bound.(int))
		},
		KindMinHeight: func(bound any) string {
			return fmt.Sprintf("height must not be less than %dpx", bound.(int))
		},
		KindMIMETypeInclusion: func(bound any) string {
			return fmt.Sprintf("type must be one of: %s", strings.Join(bound.([]string), ", "))
		},
		KindMIMETypeExclusion: func(bound any) string {
			return fmt.Sprintf("type must not be one of: %s", strings.Join(bound.([]string), ", "))
		},
		KindExtensionInclusion: func(bound any) string {
			return fmt.Sprintf("extension must be one of: %s", strings.Join(bound.([]string), ", "))
		},
		KindExtensionExclusion: func(bound any) string {
			return fmt.Sprintf("extension must not be one of: %s", strings.Join(bound.([]string), ", "))
		},
	}
}

// CheckOption overrides the failure message for a single check call.
type CheckOption func(*checkOptions)

type checkOptions struct {
	message     string
	messageSet  bool
	messageFunc MessageFunc
}

// WithMessage uses the literal string as the failure message, verbatim.
// An empty literal is honored, not treated as unset.
func WithMessage(message string) CheckOption {
	return func(o *checkOptions) {
		o.message = message
		o.messageSet = true
	}
}

// WithMessageFunc builds the failure message from the exact bound passed to
// the check. A literal WithMessage takes precedence when both are given.
func WithMessageFunc(fn MessageFunc) CheckOption {
	return func(o *checkOptions) { o.messageFunc = fn }
}

// message resolves the failure message for a failed check: per-call literal
// first, then per-call function, then the validator's message table. An
// unknown kind is a bug in the engine itself and panics.
func (v *Validator) message(kind Kind, bound any, opts []CheckOption) string {
	var o checkOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.messageSet {
		return o.message
	}
	if o.messageFunc != nil {
		return o.messageFunc(bound)
	}
	fn, ok := v.messages[kind]
	if !ok {
		panic(fmt.Sprintf("validate: no message registered for check kind %q", kind))
	}
	return fn(bound)
}
