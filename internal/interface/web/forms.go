package web

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type productForm struct {
	Name  string `validate:"required"`
	Price string `validate:"required,numeric"`
}

// validateProductForm checks the submitted fields and returns the parsed
// price together with a field-keyed error set. An empty set means valid.
func (s *Server) validateProductForm(f productForm) (float64, map[string]string) {
	fieldErrs := make(map[string]string)

	if err := s.validator.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				field := strings.ToLower(fe.Field())
				switch fe.Tag() {
				case "required":
					fieldErrs[field] = "The " + field + " field is required."
				case "numeric":
					fieldErrs[field] = "The " + field + " must be a number."
				default:
					fieldErrs[field] = "The " + field + " field is invalid."
				}
			}
		} else {
			fieldErrs["name"] = "The submitted form is invalid."
		}
	}

	var price float64
	if _, bad := fieldErrs["price"]; !bad {
		parsed, err := strconv.ParseFloat(f.Price, 64)
		switch {
		case err != nil:
			fieldErrs["price"] = "The price must be a number."
		case parsed < 0:
			fieldErrs["price"] = "The price must be zero or greater."
		default:
			price = parsed
		}
	}

	return price, fieldErrs
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
