package log

import (
	"context"
	"testing"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")

	if got := RequestIDFromContext(ctx); got != "abc" {
		t.Errorf("got %q, want abc", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestWithFields_MergesWithoutMutatingParent(t *testing.T) {
	// Arrange
	parent := WithFields(context.Background(), "a", 1)

	// Act
	child := WithFields(parent, "b", 2, "a", 3)

	// Assert
	pf := FieldsFromContext(parent)
	if len(pf) != 1 || pf["a"] != 1 {
		t.Errorf("parent fields changed: %v", pf)
	}
	cf := FieldsFromContext(child)
	if cf["a"] != 3 || cf["b"] != 2 {
		t.Errorf("child fields = %v", cf)
	}
}

func TestFieldsFromContext_Empty(t *testing.T) {
	if got := FieldsFromContext(context.Background()); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}
