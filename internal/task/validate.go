package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/josephgoksu/taskrank/models"
)

// requiredFields are checked for presence in this order.
var requiredFields = []string{"title", "due_date", "estimated_hours", "importance"}

// validate is shared; validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name so errors match what the user typed.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate parses raw input and checks every task in it.
// The whole batch is rejected on the first failing task; on success the
// tasks are returned in their original order with all fields intact.
func Validate(raw []byte) ([]models.Task, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, &ValidationError{Kind: EmptyInput, TaskIndex: -1}
	}

	var probe any
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, &ValidationError{Kind: MalformedJSON, TaskIndex: -1, Err: err}
	}
	if _, ok := probe.([]any); !ok {
		return nil, &ValidationError{Kind: NotAnArray, TaskIndex: -1}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, &ValidationError{Kind: MalformedJSON, TaskIndex: -1, Err: err}
	}
	if len(elems) == 0 {
		return nil, &ValidationError{Kind: NotNonEmpty, TaskIndex: -1}
	}

	tasks := make([]models.Task, 0, len(elems))
	for i, elem := range elems {
		t, err := validateTask(i, elem)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func validateTask(index int, elem json.RawMessage) (models.Task, error) {
	elem = bytes.TrimSpace(elem)
	if len(elem) == 0 || elem[0] != '{' {
		return models.Task{}, &ValidationError{Kind: NotAnObject, TaskIndex: index}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(elem, &fields); err != nil {
		return models.Task{}, &ValidationError{Kind: NotAnObject, TaskIndex: index, Err: err}
	}
	for _, name := range requiredFields {
		if !present(name, fields[name]) {
			return models.Task{}, &ValidationError{Kind: MissingField, TaskIndex: index, Field: name}
		}
	}

	var t models.Task
	if err := json.Unmarshal(elem, &t); err != nil {
		return models.Task{}, &ValidationError{Kind: InvalidField, TaskIndex: index, Field: fieldOf(err), Err: err}
	}

	if err := validate.Struct(t); err != nil {
		return models.Task{}, structError(index, t, err)
	}
	return t, nil
}

// present reports whether a required field counts as supplied.
// Text fields must be non-empty; numeric fields only need to exist, so an
// explicit 0 or null reaches the range checks instead of failing here.
func present(name string, value json.RawMessage) bool {
	if value == nil {
		return false
	}
	switch name {
	case "title", "due_date":
		v := bytes.TrimSpace(value)
		return !bytes.Equal(v, []byte("null")) && !bytes.Equal(v, []byte(`""`))
	default:
		return true
	}
}

func fieldOf(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field
	}
	if strings.Contains(err.Error(), "dependencies") {
		return "dependencies"
	}
	return ""
}

func structError(index int, t models.Task, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Kind: InvalidField, TaskIndex: index, Err: err}
	}

	fe := fieldErrs[0]
	switch fe.Field() {
	case "importance":
		return &ValidationError{Kind: ImportanceOutOfRange, TaskIndex: index, Field: "importance", Title: t.Title, Err: err}
	case "title", "due_date":
		return &ValidationError{Kind: MissingField, TaskIndex: index, Field: fe.Field(), Err: err}
	default:
		return &ValidationError{Kind: InvalidField, TaskIndex: index, Field: fe.Field(), Err: err}
	}
}
