package validate

import (
	"slices"
	"strings"
)

// File exposes the metadata fields the checks read. *uploadkit.UploadedFile
// satisfies it, as does any type carrying extracted upload metadata.
type File interface {
	// Size returns the content size in bytes.
	Size() int64
	// MIMEType returns the recorded MIME type, false when absent.
	MIMEType() (string, bool)
	// Extension returns the lowercased extension without the dot, false
	// when absent.
	Extension() (string, bool)
}

// Dimensioned is implemented by files that carry image dimension metadata.
// Width and Height return false while extraction has not run. Files without
// the interface have no dimension concept at all; calling a width/height
// check on them is a programmer error.
type Dimensioned interface {
	Width() (int, bool)
	Height() (int, bool)
}

// Errors is the ordered list of failure messages from one validation pass.
type Errors []string

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e, "; ")
}

// Validator runs checks against one file's metadata and accumulates failure
// messages in call order. Create one per file per pass; a Validator is not
// safe for concurrent use and must not be shared across uploads.
type Validator struct {
	file     File
	messages map[Kind]MessageFunc
	errors   Errors
}

// Option configures a Validator at construction time.
type Option func(*Validator)

// WithMessages merges message overrides into the validator's table. Keys
// absent from the map keep their previous producers; repeated options
// compose, last write wins per key.
func WithMessages(overrides map[Kind]MessageFunc) Option {
	return func(v *Validator) {
		for kind, fn := range overrides {
			if fn != nil {
				v.messages[kind] = fn
			}
		}
	}
}

// New creates a validator for one file. The message table starts from the
// built-in defaults and is frozen after the options run.
func New(file File, opts ...Option) *Validator {
	if file == nil {
		panic("validate: New called with nil file")
	}
	v := &Validator{
		file:     file,
		messages: defaultMessages(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Errors returns the messages accumulated so far, in check call order.
func (v *Validator) Errors() []string {
	return slices.Clone(v.errors)
}

// Err returns the accumulated messages as an error, or nil when every check
// passed or was skipped.
func (v *Validator) Err() error {
	if len(v.errors) == 0 {
		return nil
	}
	return slices.Clone(v.errors)
}

func (v *Validator) fail(kind Kind, bound any, opts []CheckOption) Result {
	v.errors = append(v.errors, v.message(kind, bound, opts))
	return ResultFailed
}

// MaxSize checks that the file size does not exceed max. Boundary-equal
// sizes pass.
func (v *Validator) MaxSize(max int64, opts ...CheckOption) Result {
	if v.file.Size() <= max {
		return ResultPassed
	}
	return v.fail(KindMaxSize, max, opts)
}

// MinSize checks that the file size is not below min.
func (v *Validator) MinSize(min int64, opts ...CheckOption) Result {
	if v.file.Size() >= min {
		return ResultPassed
	}
	return v.fail(KindMinSize, min, opts)
}

// Size checks that the file size lies in [min, max]. The minimum bound is
// checked first and short-circuits: a size below min reports only the
// min-bound message even if it also violates max.
func (v *Validator) Size(min, max int64, opts ...CheckOption) Result {
	if r := v.MinSize(min, opts...); r != ResultPassed {
		return r
	}
	return v.MaxSize(max, opts...)
}

// dimensioned asserts that the file carries dimension metadata. Missing the
// capability entirely is a wiring bug and aborts; it must never be confused
// with dimensions that simply were not extracted.
func (v *Validator) dimensioned() Dimensioned {
	d, ok := v.file.(Dimensioned)
	if !ok {
		panic("validate: width/height checks require a file with dimension metadata (validate.Dimensioned)")
	}
	return d
}

// MaxWidth checks that the extracted width does not exceed max. Returns
// ResultSkipped without appending anything when the width was never
// extracted.
func (v *Validator) MaxWidth(max int, opts ...CheckOption) Result {
	w, ok := v.dimensioned().Width()
	if !ok {
		return ResultSkipped
	}
	if w <= max {
		return ResultPassed
	}
	return v.fail(KindMaxWidth, max, opts)
}

// MinWidth checks that the extracted width is not below min.
func (v *Validator) MinWidth(min int, opts ...CheckOption) Result {
	w, ok := v.dimensioned().Width()
	if !ok {
		return ResultSkipped
	}
	if w >= min {
		return ResultPassed
	}
	return v.fail(KindMinWidth, min, opts)
}

// Width checks that the extracted width lies in [min, max], min first with
// short-circuit like Size.
func (v *Validator) Width(min, max int, opts ...CheckOption) Result {
	if r := v.MinWidth(min, opts...); r != ResultPassed {
		return r
	}
	return v.MaxWidth(max, opts...)
}

// MaxHeight checks that the extracted height does not exceed max.
func (v *Validator) MaxHeight(max int, opts ...CheckOption) Result {
	h, ok := v.dimensioned().Height()
	if !ok {
		return ResultSkipped
	}
	if h <= max {
		return ResultPassed
	}
	return v.fail(KindMaxHeight, max, opts)
}

// MinHeight checks that the extracted height is not below min.
func (v *Validator) MinHeight(min int, opts ...CheckOption) Result {
	h, ok := v.dimensioned().Height()
	if !ok {
		return ResultSkipped
	}
	if h >= min {
		return ResultPassed
	}
	return v.fail(KindMinHeight, min, opts)
}

// Height checks that the extracted height lies in [min, max], min first with
// short-circuit like Size.
func (v *Validator) Height(min, max int, opts ...CheckOption) Result {
	if r := v.MinHeight(min, opts...); r != ResultPassed {
		return r
	}
	return v.MaxHeight(max, opts...)
}

// MIMETypeInclusion checks that the recorded MIME type matches one of the
// listed types. Matching is case-insensitive whole-string equality, never
// substring containment. An absent MIME type always fails.
func (v *Validator) MIMETypeInclusion(types []string, opts ...CheckOption) Result {
	mt, ok := v.file.MIMEType()
	if ok && containsFold(types, mt) {
		return ResultPassed
	}
	return v.fail(KindMIMETypeInclusion, types, opts)
}

// MIMETypeExclusion checks that the recorded MIME type matches none of the
// listed types. An absent MIME type always passes.
func (v *Validator) MIMETypeExclusion(types []string, opts ...CheckOption) Result {
	mt, ok := v.file.MIMEType()
	if !ok || !containsFold(types, mt) {
		return ResultPassed
	}
	return v.fail(KindMIMETypeExclusion, types, opts)
}

// ExtensionInclusion checks that the file extension matches one of the
// listed extensions (without dots). An absent extension always fails.
func (v *Validator) ExtensionInclusion(extensions []string, opts ...CheckOption) Result {
	ext, ok := v.file.Extension()
	if ok && containsFold(extensions, ext) {
		return ResultPassed
	}
	return v.fail(KindExtensionInclusion, extensions, opts)
}

// ExtensionExclusion checks that the file extension matches none of the
// listed extensions. An absent extension always passes.
func (v *Validator) ExtensionExclusion(extensions []string, opts ...CheckOption) Result {
	ext, ok := v.file.Extension()
	if !ok || !containsFold(extensions, ext) {
		return ResultPassed
	}
	return v.fail(KindExtensionExclusion, extensions, opts)
}

func containsFold(list []string, value string) bool {
	return slices.ContainsFunc(list, func(s string) bool {
		return strings.EqualFold(s, value)
	})
}
