package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a configuration
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "\n")
}

var validate = validator.New()

// ValidateConfig checks the struct constraints and the environment-specific rules
func ValidateConfig(cfg *Config) error {
	var problems ValidationErrors

	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			problems = append(problems, ValidationError{
				Field:   fe.Namespace(),
				Message: fmt.Sprintf("failed %q constraint (value %v)", fe.Tag(), fe.Value()),
			})
		}
	}

	// Outside development the database password has to come from the
	// environment or a Docker secret
	if cfg.Environment == Production || cfg.Environment == CI {
		if cfg.Database.Password == "" {
			problems = append(problems, ValidationError{
				Field:   "Config.Database.Password",
				Message: "DB_PASSWORD or the db_password secret is required",
			})
		}
	}

	if strings.HasPrefix(cfg.MealPlan.Source, "s3://") && cfg.AWS.Region == "" {
		problems = append(problems, ValidationError{
			Field:   "Config.AWS.Region",
			Message: "AWS_REGION is required for an s3 meal plan source",
		})
	}

	if len(problems) > 0 {
		return problems
	}
	return nil
}
