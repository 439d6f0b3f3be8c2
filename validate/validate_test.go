package validate_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/agoranet/go-agora-client/validate"
)

type allocationInput struct {
	Address     string `json:"address" validate:"required"`
	PaymentURL  string `json:"paymentUrl" validate:"required,url"`
	TotalAmount string `json:"totalAmount" validate:"required,numeric"`
}

func TestCheck_Valid(t *testing.T) {
	in := allocationInput{
		Address:     "0x206bfe4f439a83b65a5b9c2c3b1cc6cb49054cc4",
		PaymentURL:  "http://127.0.0.1:7465/payment-api/v1/",
		TotalAmount: "10.0",
	}
	if err := validate.Check(&in); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestCheck_MissingRequired(t *testing.T) {
	in := allocationInput{
		PaymentURL:  "http://127.0.0.1:7465/payment-api/v1/",
		TotalAmount: "10.0",
	}
	err := validate.Check(&in)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}

	fe := validate.GetFieldErrors(err)
	if fe == nil {
		t.Fatal("expected FieldErrors")
	}

	fields := fe.Fields()
	if _, ok := fields["address"]; !ok {
		t.Fatalf("expected 'address' field error, got %v", fields)
	}
	if fields["address"] != "This field is required" {
		t.Fatalf("address error = %q, want %q", fields["address"], "This field is required")
	}
}

func TestCheck_InvalidField(t *testing.T) {
	in := allocationInput{
		Address:     "0x206bfe4f439a83b65a5b9c2c3b1cc6cb49054cc4",
		PaymentURL:  "not a url",
		TotalAmount: "ten",
	}
	err := validate.Check(&in)
	if err == nil {
		t.Fatal("expected error for invalid fields")
	}

	fields := validate.GetFieldErrors(err).Fields()
	if _, ok := fields["paymentUrl"]; !ok {
		t.Fatalf("expected 'paymentUrl' field error, got %v", fields)
	}
	if _, ok := fields["totalAmount"]; !ok {
		t.Fatalf("expected 'totalAmount' field error, got %v", fields)
	}
}

func TestCheck_UsesJSONNames(t *testing.T) {
	type payload struct {
		MaxItems int `json:"maxItems" validate:"required"`
	}

	err := validate.Check(&payload{})
	if err == nil {
		t.Fatal("expected error")
	}

	// Errors are keyed by the wire name, not the Go field name.
	fields := validate.GetFieldErrors(err).Fields()
	if _, ok := fields["MaxItems"]; ok {
		t.Fatalf("struct name leaked, got %v", fields)
	}
	if fields["maxItems"] != "This field is required" {
		t.Fatalf("expected 'maxItems' error, got %v", fields)
	}
}

func TestIsFieldErrors(t *testing.T) {
	err := validate.NewFieldsError("totalAmount", errors.New("must not be negative"))

	if !validate.IsFieldErrors(err) {
		t.Error("expected IsFieldErrors to be true")
	}
	if validate.IsFieldErrors(errors.New("plain")) {
		t.Error("expected IsFieldErrors to be false for plain error")
	}

	wrapped := fmt.Errorf("checking allocation: %w", err)
	fe := validate.GetFieldErrors(wrapped)
	if fe == nil {
		t.Fatal("expected FieldErrors through the wrap")
	}
	if fe.Fields()["totalAmount"] != "must not be negative" {
		t.Fatalf("unexpected fields: %v", fe.Fields())
	}
}

func TestCheck_NonStruct(t *testing.T) {
	s := "just a string"
	// A non-struct returns the validator's own error rather than
	// FieldErrors; it must not panic.
	if err := validate.Check(&s); err != nil {
		if validate.IsFieldErrors(err) {
			t.Fatal("non-struct input should not produce FieldErrors")
		}
	}
}
