package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	phoneRegex = regexp.MustCompile(`^(\+?[1-9]\d{7,14}|0\d{9})$`)
	emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
)

var customValidations = map[string][]string{
	"user_role":      {"collector", "hub-manager", "volunteer", "donor", "admin"},
	"plastic_type":   {"PET", "HDPE", "LDPE", "PP", "PS", "OTHER"},
	"risk_level":     {"low", "medium", "high", "critical"},
	"donation_type":  {"one-time", "monthly", "quarterly", "annual"},
	"payment_method": {"mobile_money", "bank_transfer", "cash"},
}

func init() {
	validate = validator.New()

	for tag, allowed := range customValidations {
		_ = validate.RegisterValidation(tag, oneOf(allowed))
	}
	_ = validate.RegisterValidation("phone", validatePhone)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, a := range allowed {
			if value == a {
				return true
			}
		}
		return false
	}
}

func validatePhone(fl validator.FieldLevel) bool {
	phone := strings.ReplaceAll(fl.Field().String(), " ", "")
	return phoneRegex.MatchString(phone)
}

func IsValidEmail(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	return emailRegex.MatchString(email)
}
