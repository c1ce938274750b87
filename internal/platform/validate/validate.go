package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"enough/internal/platform/calendar"
	apperrors "enough/internal/platform/errors"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(calendar.Date); ok {
				return d.String()
			}
			return nil
		}, calendar.Date{})
		instance.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "yaml"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return field.Name
		})
	})
	return instance
}

// Struct checks validate tags and reports every failing field as one
// ErrInvalidInput error.
func Struct(v any) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, strings.Join(parts, "; "))
}
