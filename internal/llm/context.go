package llm

import "context"

// Purpose labels what a request was made for in the request log.
type Purpose string

const (
	PurposeHint    Purpose = "hint"
	PurposeUnknown Purpose = "unknown"
)

type purposeKey struct{}

// WithPurpose tags requests made with ctx.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the tag set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok && p != "" {
		return p
	}
	return PurposeUnknown
}
