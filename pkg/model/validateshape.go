package model

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// shapeValidator is built once and reused; go-playground/validator's
// Validate type is documented safe for concurrent use once its
// struct-level configuration (tag name function, custom validations) is
// registered, so caching it avoids re-registering on every call. This
// mirrors the teacher's helpers.NewValidator, collapsed into a
// memoized singleton since, unlike engine-scoped caches, a stateless
// struct validator carries no per-caller data and is safe to share.
var (
	shapeValidatorOnce sync.Once
	shapeValidator     *validator.Validate
)

func getShapeValidator() *validator.Validate {
	shapeValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		shapeValidator = v
	})
	return shapeValidator
}

// ValidateShape runs a gross, struct-level pre-check over doc (required
// fields present, salt is 64 hex characters, jurisdiction codes are
// two uppercase letters) using go-playground/validator/v10. It is
// intentionally shallow: the graph-structural and identifier rules in
// pkg/validate are the authority on conformance. ValidateShape exists
// so a malformed document fails fast, before the more expensive L1/L2/L3
// rule sweep runs at all.
func ValidateShape(doc *Document) error {
	v := getShapeValidator()
	if err := v.Struct(doc); err != nil {
		return err
	}
	for i := range doc.Nodes {
		if err := v.Struct(doc.Nodes[i]); err != nil {
			return err
		}
	}
	for i := range doc.Edges {
		if err := v.Struct(doc.Edges[i]); err != nil {
			return err
		}
	}
	return nil
}
