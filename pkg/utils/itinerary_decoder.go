package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"jelajah/internal/models/response_models"
)

// Wire shapes for what the model sends. They are kept apart from the response
// models so nothing the model invents (a user_cost, say) can leak through.
type wireActivity struct {
	Name        string `json:"name" validate:"required"`
	Hours       string `json:"hours" validate:"required"`
	Cost        string `json:"cost" validate:"required"`
	Description string `json:"description"`
}

type wireDay struct {
	Day        int            `json:"day" validate:"gt=0"`
	Theme      string         `json:"theme" validate:"required"`
	Activities []wireActivity `json:"activities" validate:"required,dive"`
}

var payloadValidator = newPayloadValidator()

func newPayloadValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeItinerary parses an extracted payload. The payload must be a JSON
// array of day objects; every day needs a positive day number, a theme and an
// activities array, and every activity a name, hours and cost. Unknown keys
// are ignored. Failures are always *DecodeError.
func DecodeItinerary(payload string) (response_models.Itinerary, error) {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" {
		return nil, &DecodeError{Msg: "empty payload"}
	}

	var days []wireDay
	if err := json.Unmarshal([]byte(trimmed), &days); err != nil {
		return nil, &DecodeError{Msg: "payload is not a JSON array of days", Err: err}
	}
	if days == nil {
		return nil, &DecodeError{Msg: "payload is null"}
	}

	itinerary := make(response_models.Itinerary, 0, len(days))
	for i, d := range days {
		if err := payloadValidator.Struct(d); err != nil {
			return nil, &DecodeError{Msg: fmt.Sprintf("day element %d: %s", i, describeValidation(err)), Err: err}
		}

		activities := make([]response_models.Activity, len(d.Activities))
		for j, a := range d.Activities {
			activities[j] = response_models.Activity{
				Name:        a.Name,
				Hours:       a.Hours,
				Cost:        a.Cost,
				Description: a.Description,
			}
		}
		itinerary = append(itinerary, response_models.DayPlan{
			Day:        d.Day,
			Theme:      d.Theme,
			Activities: activities,
		})
	}

	return itinerary, nil
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "gt":
			parts = append(parts, fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %q", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
