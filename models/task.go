package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Task is a unit of work submitted for prioritization.
//
// Fields the model does not know about are kept in Extra and written back
// unchanged when the task is marshaled, so a validated batch reaches the
// scoring service exactly as the user wrote it. Known fields keep their
// input spelling too (a numeric id, 10.0, an explicit null) unless the
// typed value has been changed since decoding.
type Task struct {
	ID             string                     `json:"id,omitempty"`
	Title          string                     `json:"title,omitempty" validate:"required"`
	DueDate        string                     `json:"due_date,omitempty" validate:"required"`
	EstimatedHours *float64                   `json:"estimated_hours,omitempty" validate:"omitempty,gte=0"`
	Importance     *int                       `json:"importance,omitempty" validate:"required,min=1,max=10"`
	Dependencies   Dependencies               `json:"dependencies,omitempty"`
	Extra          map[string]json.RawMessage `json:"-" validate:"-"`

	origin map[string]original
}

// original is a known field as it was read, next to the typed encoding it
// decoded to. decoded is nil when the typed field encodes to nothing.
type original struct {
	raw     json.RawMessage
	decoded json.RawMessage
}

// taskWire has Task's fields without its JSON methods.
type taskWire Task

var taskFields = map[string]struct{}{
	"id":              {},
	"title":           {},
	"due_date":        {},
	"estimated_hours": {},
	"importance":      {},
	"dependencies":    {},
}

// UnmarshalJSON decodes the known fields and stashes the rest in Extra.
// A numeric id is read as its text and any other non-string id leaves ID
// empty. An integral importance written with a fraction or exponent (10.0,
// 1e1) is read as an integer.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	typed := make(map[string]json.RawMessage, len(taskFields))
	for k, v := range raw {
		if _, known := taskFields[k]; known {
			typed[k] = v
		}
	}
	if v, ok := typed["id"]; ok {
		switch {
		case isNumber(v):
			typed["id"], _ = json.Marshal(string(bytes.TrimSpace(v)))
		case !isString(v):
			// Not an id we can match dependencies against; still passed through.
			delete(typed, "id")
		}
	}
	if v, ok := typed["importance"]; ok {
		typed["importance"] = integralNumber(v)
	}

	var w taskWire
	if err := decodeFields(typed, &w); err != nil {
		return err
	}

	decoded, err := encodedFields(w)
	if err != nil {
		return err
	}
	for k, v := range raw {
		if _, known := taskFields[k]; known {
			if w.origin == nil {
				w.origin = make(map[string]original, len(taskFields))
			}
			w.origin[k] = original{raw: v, decoded: decoded[k]}
			continue
		}
		if w.Extra == nil {
			w.Extra = make(map[string]json.RawMessage)
		}
		w.Extra[k] = v
	}

	*t = Task(w)
	return nil
}

// MarshalJSON encodes the known fields followed by any preserved extras.
func (t Task) MarshalJSON() ([]byte, error) {
	obj, err := encodedFields(taskWire(t))
	if err != nil {
		return nil, err
	}
	for k, o := range t.origin {
		if !bytes.Equal(obj[k], o.decoded) {
			continue
		}
		if obj == nil {
			obj = make(map[string]json.RawMessage, len(t.origin))
		}
		obj[k] = o.raw
	}
	if obj == nil {
		obj = map[string]json.RawMessage{}
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	return mergeFields(data, t.Extra)
}

// decodeFields decodes the known fields of one task object into w.
func decodeFields(fields map[string]json.RawMessage, w *taskWire) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, w)
}

// encodedFields returns the typed encoding of each known field w sets.
func encodedFields(w taskWire) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func isString(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	return len(v) > 0 && v[0] == '"'
}

func isNumber(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	return len(v) > 0 && (v[0] == '-' || (v[0] >= '0' && v[0] <= '9'))
}

// maxIntegral bounds rewritten values; anything larger is already far out
// of the importance range.
const maxIntegral = 1e15

// integralNumber rewrites a JSON number with an integral value to plain
// integer form. Other values are returned unchanged.
func integralNumber(v json.RawMessage) json.RawMessage {
	if !isNumber(v) {
		return v
	}
	f, err := strconv.ParseFloat(string(bytes.TrimSpace(v)), 64)
	if err != nil || f != math.Trunc(f) {
		return v
	}
	f = math.Max(-maxIntegral, math.Min(maxIntegral, f))
	return json.RawMessage(strconv.FormatInt(int64(f), 10))
}

// Dependencies is an ordered list of task identifiers.
// It also accepts a comma-separated string, which some clients send.
type Dependencies []string

// UnmarshalJSON accepts null, an array of ids (strings or numbers) or a
// comma-separated string.
func (d *Dependencies) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*d = nil
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		var out Dependencies
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*d = out
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return fmt.Errorf("dependencies must be a list of task ids: %w", err)
	}
	list := make(Dependencies, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if isNumber(item) {
			list = append(list, string(item))
			continue
		}
		var id string
		if err := json.Unmarshal(item, &id); err != nil {
			return fmt.Errorf("dependencies must be a list of task ids: %w", err)
		}
		list = append(list, id)
	}
	*d = list
	return nil
}

// AnalyzedTask is a Task as returned by the scoring service.
// PriorityScore is nil for locally sorted results.
type AnalyzedTask struct {
	Task
	PriorityScore *float64 `json:"priority_score,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

type analysisFields struct {
	PriorityScore *float64 `json:"priority_score"`
	Explanation   *string  `json:"explanation"`
}

// UnmarshalJSON decodes the task part and lifts the scoring fields out of Extra.
func (a *AnalyzedTask) UnmarshalJSON(data []byte) error {
	var t Task
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}

	var f analysisFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}

	delete(t.Extra, "priority_score")
	delete(t.Extra, "explanation")
	if len(t.Extra) == 0 {
		t.Extra = nil
	}

	a.Task = t
	a.PriorityScore = f.PriorityScore
	a.Explanation = ""
	if f.Explanation != nil {
		a.Explanation = *f.Explanation
	}
	return nil
}

// MarshalJSON writes the task followed by the scoring fields.
func (a AnalyzedTask) MarshalJSON() ([]byte, error) {
	data, err := a.Task.MarshalJSON()
	if err != nil {
		return nil, err
	}

	extra := make(map[string]json.RawMessage, 2)
	if a.PriorityScore != nil {
		if extra["priority_score"], err = json.Marshal(*a.PriorityScore); err != nil {
			return nil, err
		}
	}
	if a.Explanation != "" {
		if extra["explanation"], err = json.Marshal(a.Explanation); err != nil {
			return nil, err
		}
	}
	return mergeFields(data, extra)
}

// RankedTask is an AnalyzedTask placed in the final ordering with its tier.
type RankedTask struct {
	AnalyzedTask
	Rank int          `json:"rank"`
	Tier PriorityTier `json:"tier"`
}

// MarshalJSON writes the analyzed task followed by rank and tier.
func (r RankedTask) MarshalJSON() ([]byte, error) {
	data, err := r.AnalyzedTask.MarshalJSON()
	if err != nil {
		return nil, err
	}
	rank, _ := json.Marshal(r.Rank)
	tier, _ := json.Marshal(r.Tier)
	return mergeFields(data, map[string]json.RawMessage{"rank": rank, "tier": tier})
}

// mergeFields adds extra keys to an encoded JSON object without overwriting
// keys that are already present.
func mergeFields(data []byte, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return data, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		obj = make(map[string]json.RawMessage, len(extra))
	}
	for k, v := range extra {
		if _, exists := obj[k]; !exists {
			obj[k] = v
		}
	}
	return json.Marshal(obj)
}
