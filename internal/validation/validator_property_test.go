//go:build property
// +build property

package validation

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/linskybing/dynamic-forms/internal/domain/form"
)

func TestValidateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	schema := signupSchema()

	payloadOf := func(role, email, company string) form.Payload {
		p := form.Payload{}
		if role != "" {
			p["role"] = form.Text(role)
		}
		if email != "" {
			p["email"] = form.Text(email)
		}
		if company != "" {
			p["company"] = form.Text(company)
		}
		return p
	}
	roles := gen.OneConstOf("", "personal", "business", "other")

	properties.Property("validation is deterministic", prop.ForAll(
		func(role, email, company string) bool {
			p := payloadOf(role, email, company)
			first, err := Validate(schema, p)
			if err != nil {
				return false
			}
			second, err := Validate(schema, p)
			if err != nil {
				return false
			}
			a, _ := json.Marshal(first)
			b, _ := json.Marshal(second)
			return string(a) == string(b)
		},
		roles, gen.AlphaString(), gen.AlphaString(),
	))

	properties.Property("payload is never modified", prop.ForAll(
		func(role, email, company string) bool {
			p := payloadOf(role, email, company)
			before, _ := json.Marshal(p)
			if _, err := Validate(schema, p); err != nil {
				return false
			}
			after, _ := json.Marshal(p)
			return string(before) == string(after)
		},
		roles, gen.AlphaString(), gen.AlphaString(),
	))

	properties.Property("errors only name visible fields", prop.ForAll(
		func(role, email, company string) bool {
			res, err := Validate(schema, payloadOf(role, email, company))
			if err != nil {
				return false
			}
			for _, e := range res.Errors {
				if !res.IsVisible(e.FieldKey) {
					return false
				}
			}
			return res.IsVisible("company") == (role == "business")
		},
		roles, gen.AlphaString(), gen.AlphaString(),
	))

	properties.TestingRun(t)
}
