package service

import (
	stdErrors "errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/trendprints/storefront/internal/services")

var (
	errNotFinite     = stdErrors.New("not a finite number")
	errNotWholeCount = stdErrors.New("not a positive whole number")
)

// endSpan records err on the span before ending it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}

// toAmount coerces a client supplied number. NaN and infinities are rejected
// since they cannot be encoded back to JSON.
func toAmount(v any) (float64, error) {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", errNotFinite, v)
	}

	return f, nil
}

// toQuantity defaults an absent quantity to 1. Anything else must be a
// positive whole number.
func toQuantity(v any) (int, error) {
	if v == nil {
		return 1, nil
	}

	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return 1, nil
	}

	f, err := toAmount(v)
	if err != nil {
		return 0, err
	}

	if f < 1 || f > math.MaxInt32 || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %v", errNotWholeCount, v)
	}

	return int(f), nil
}
