package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Profile ids are opaque tokens: UUIDs, Mongo object ids or slugs.
var idRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// New returns a validator with the custom tags registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("profile_id", ProfileID)
}

// ProfileID validates a seeker or candidate identifier.
func ProfileID(fl validator.FieldLevel) bool {
	return idRegex.MatchString(fl.Field().String())
}
