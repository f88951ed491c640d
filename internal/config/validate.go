package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError points at a bad config file or value. Line is set for
// syntax errors, Key for invalid values.
type ValidationError struct {
	Path    string
	Line    int
	Column  int
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	case e.Key != "":
		return fmt.Sprintf("%s: %s %s", e.Path, e.Key, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
}

// structValidator reports fields under their koanf key.
var structValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
})

// ValidateYAMLSyntax parses the file at path and reports syntax errors with
// their position. Missing and empty files are valid.
func ValidateYAMLSyntax(path string) error {
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return nil
	case os.IsPermission(err):
		return &ValidationError{Path: path, Message: "permission denied"}
	case err != nil:
		return &ValidationError{Path: path, Message: err.Error()}
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var node yaml.Node
	err = yaml.Unmarshal(data, &node)
	if err == nil {
		return nil
	}

	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{Path: path, Message: strings.Join(typeErr.Errors, "; ")}
	}
	line, column, msg := yamlPosition(err.Error())
	return &ValidationError{Path: path, Line: line, Column: column, Message: msg}
}

// yamlPosition splits "yaml: line 5: column 3: msg" or "yaml: line 5: msg"
// into its parts. Messages without a position come back unchanged.
func yamlPosition(raw string) (line, column int, msg string) {
	rest, ok := strings.CutPrefix(raw, "yaml: line ")
	if !ok {
		return 0, 0, raw
	}
	num, rest, ok := strings.Cut(rest, ": ")
	if !ok {
		return 0, 0, raw
	}
	line, err := strconv.Atoi(num)
	if err != nil {
		return 0, 0, raw
	}

	column = 1
	if colRest, ok := strings.CutPrefix(rest, "column "); ok {
		if num, after, ok := strings.Cut(colRest, ": "); ok {
			if c, err := strconv.Atoi(num); err == nil {
				column, rest = c, after
			}
		}
	}
	return line, column, rest
}

// ValidateConfigValues checks the struct constraints of cfg and the rules
// that span several keys. path names the config in error messages.
func ValidateConfigValues(cfg *Configuration, path string) error {
	if err := structValidator().Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return &ValidationError{Path: path, Message: err.Error()}
		}
		fe := fieldErrs[0]
		return &ValidationError{Path: path, Key: fe.Field(), Message: describeFieldError(fe)}
	}

	if cfg.DataSource == "milestones" && !strings.Contains(cfg.MilestoneMatch, "{{tag_name}}") {
		return &ValidationError{
			Path:    path,
			Key:     "milestone_match",
			Message: "must contain the {{tag_name}} placeholder when data_source is milestones",
		}
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "url":
		return "must be a valid URL"
	default:
		return "fails the " + fe.Tag() + " rule"
	}
}
