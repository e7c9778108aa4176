package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/catalog/pkg/validate"
)

type productInput struct {
	Name       string  `json:"name"        validate:"required,max=10"`
	Price      float64 `json:"price"       validate:"gt=0"`
	CategoryID uint    `json:"category_id" validate:"required"`
	Role       string  `json:"role"        validate:"nullable,in=User,Admin"`
}

type patchInput struct {
	Name  *string  `json:"name"  validate:"nullable,filled"`
	Price *float64 `json:"price" validate:"nullable,gt=0"`
	Title *string  `json:"title" validate:"filled"`
}

func ptr[T any](v T) *T { return &v }

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{Name: "Hammer", Price: 9.99, CategoryID: 1, Role: "Admin"})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(&productInput{Name: "   "})
	for _, field := range []string{"name", "price", "category_id"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected an error for %s, got %v", field, errs)
		}
	}
	if _, ok := errs["role"]; ok {
		t.Error("nullable role must not be reported when empty")
	}
}

func TestMaxCountsRunes(t *testing.T) {
	errs := validate.Struct(productInput{Name: "ÄÖÜäöüßéèê", Price: 1, CategoryID: 1})
	if _, ok := errs["name"]; ok {
		t.Errorf("10 runes must satisfy max=10, got %v", errs)
	}
	errs = validate.Struct(productInput{Name: "abcdefghijk", Price: 1, CategoryID: 1})
	if _, ok := errs["name"]; !ok {
		t.Error("11 characters must fail max=10")
	}
}

func TestInRule(t *testing.T) {
	errs := validate.Struct(productInput{Name: "x", Price: 1, CategoryID: 1, Role: "Root"})
	if errs["role"] != "The selected role is invalid." {
		t.Errorf("unexpected role message: %q", errs["role"])
	}
}

func TestPointerFields(t *testing.T) {
	if errs := validate.Struct(patchInput{Title: ptr("t")}); validate.HasErrors(errs) {
		t.Errorf("absent nullable pointers must pass, got %v", errs)
	}

	errs := validate.Struct(patchInput{Name: ptr(""), Price: ptr(-1.0), Title: ptr(" ")})
	if _, ok := errs["price"]; !ok {
		t.Error("negative price must fail gt=0")
	}
	if _, ok := errs["title"]; !ok {
		t.Error("blank title must fail filled")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("a sent but blank pointer must fail filled")
	}
}

func TestNullablePointerChecksZeroValues(t *testing.T) {
	errs := validate.Struct(patchInput{Name: ptr("  "), Price: ptr(0.0)})
	if errs["name"] != "The name field must not be empty." {
		t.Errorf("unexpected name message: %q", errs["name"])
	}
	if errs["price"] != "The price must be greater than 0." {
		t.Errorf("unexpected price message: %q", errs["price"])
	}
}

func TestNonStructIsIgnored(t *testing.T) {
	if errs := validate.Struct("plain"); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got %v", errs)
	}
	var nilInput *productInput
	if errs := validate.Struct(nilInput); validate.HasErrors(errs) {
		t.Errorf("expected no errors for nil pointer, got %v", errs)
	}
}
