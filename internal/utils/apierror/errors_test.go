package apierror

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestFromValidationErrorAggregatesFields(t *testing.T) {
	type payload struct {
		Title string `validate:"required"`
		Email string `validate:"required,email"`
	}

	err := validator.New().Struct(&payload{Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	resp := FromValidationError(err)
	if resp.Code() != 400 {
		t.Errorf("expected status 400, got %d", resp.Code())
	}

	structured, ok := resp.(*StructuredError)
	if !ok {
		t.Fatalf("expected *StructuredError, got %T", resp)
	}
	if len(structured.Errors["title"]) == 0 {
		t.Error("expected a problem reported for 'title'")
	}
	if len(structured.Errors["email"]) == 0 {
		t.Error("expected a problem reported for 'email'")
	}
}

func TestFromValidationErrorUnknownFailure(t *testing.T) {
	resp := FromValidationError(errors.New("connection reset"))
	if resp == nil {
		t.Fatal("expected a non-nil response")
	}
	if resp.Code() != 500 {
		t.Errorf("expected status 500, got %d", resp.Code())
	}
}
