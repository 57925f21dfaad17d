// Package validation checks the sign-up, sign-in and verification forms
// before anything is sent to the server.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/go-playground/validator/v10"
)

// Errors maps a form field (its JSON name) to the message for that field.
// An empty Errors means the form is valid.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, e[f])
	}
	return strings.Join(msgs, "; ")
}

// Err returns e as an error, or nil when there is nothing to report.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

const otpField = "OTP"

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// messages[field][tag]; "*" under a field is used for tags without an entry.
var messages = map[string]map[string]string{
	"name": {
		"required": "Full name is required",
		"min":      "Full name must be at least 2 characters long",
	},
	"email": {
		"required":      "Email address is required",
		"email_address": "Please enter a valid email address",
	},
	"password": {
		"required":  "Password is required",
		"min":       "Password must be at least 8 characters long",
		"has_lower": "Password must contain at least one lowercase letter",
		"has_upper": "Password must contain at least one uppercase letter",
		"has_digit": "Password must contain at least one number",
	},
	"confirmPassword": {
		"required": "Please confirm your password",
		"eqfield":  "Passwords do not match",
	},
	otpField: {
		"*": "Please enter the complete verification code",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	must(v.RegisterValidation("email_address", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("has_lower", containsFunc(func(r rune) bool { return r >= 'a' && r <= 'z' })))
	must(v.RegisterValidation("has_upper", containsFunc(func(r rune) bool { return r >= 'A' && r <= 'Z' })))
	must(v.RegisterValidation("has_digit", containsFunc(func(r rune) bool { return r >= '0' && r <= '9' })))

	return v
}

func containsFunc(pred func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), pred) >= 0
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Signup validates the sign-up form. Name and e-mail are judged with
// surrounding whitespace removed.
func Signup(f models.SignupForm) Errors {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	return collect(validate.Struct(f))
}

// Signin validates the sign-in form.
func Signin(c models.Credentials) Errors {
	c.Email = strings.TrimSpace(c.Email)
	return collect(validate.Struct(c))
}

// OTP validates a verification code: exactly four characters.
func OTP(code string) Errors {
	return collect(validate.Struct(models.VerifyEmailRequest{OTP: code}))
}

func collect(err error) Errors {
	out := Errors{}
	if err == nil {
		return out
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = err.Error()
		return out
	}

	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(field, fe.Tag())
	}
	return out
}

func message(field, tag string) string {
	byTag := messages[field]
	if m, ok := byTag[tag]; ok {
		return m
	}
	if m, ok := byTag["*"]; ok {
		return m
	}
	return field + " is invalid"
}
