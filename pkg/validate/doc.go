// Package validate implements metadata validation for uploaded files: size,
// dimension and type constraints checked before a file is promoted to
// permanent storage.
//
// A Validator is created per file per validation pass and accumulates
// human-readable failure messages in order. Every check compares one metadata
// field against a caller-supplied bound and appends at most one message:
//
//	v := validate.New(file)
//	v.MaxSize(5 << 20)
//	v.MIMETypeInclusion([]string{"image/jpeg", "image/png"})
//	v.ExtensionInclusion([]string{"jpg", "jpeg", "png"})
//	if err := v.Err(); err != nil {
//		// err.(validate.Errors) holds the ordered messages
//	}
//
// Checks return a tri-state Result rather than a boolean: dimension checks on
// a file whose width/height were never extracted are reported as
// ResultSkipped, which is distinct from both passing and failing.
//
// # Custom messages
//
// Each check accepts a per-call override, either a literal or a function of
// the exact bound passed to the check:
//
//	v.MaxSize(limit, validate.WithMessage("file is too big"))
//	v.MaxSize(limit, validate.WithMessageFunc(func(bound any) string {
//		return fmt.Sprintf("keep it under %s", bytesize.Format(uint64(bound.(int64))))
//	}))
//
// Defaults can be overridden per validator instance; overrides merge
// additively into the built-in table:
//
//	v := validate.New(file, validate.WithMessages(map[validate.Kind]validate.MessageFunc{
//		validate.KindMaxSize: func(any) string { return "too big" },
//	}))
//
// # Errors vs programmer mistakes
//
// Out-of-bound metadata is never an error value; it only appends a message.
// Calling a width/height check on a file that does not implement Dimensioned
// panics, as does resolving a message for an unknown Kind: both are wiring
// bugs, not user input problems.
package validate
