package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/josephgoksu/taskrank/models"
	"gopkg.in/yaml.v3"
)

// Format selects a structured encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ResultDocument is the machine-readable form of a run's results.
type ResultDocument struct {
	Strategy models.Strategy     `json:"strategy"`
	Tasks    []models.RankedTask `json:"tasks"`
}

// ErrorDocument is written in place of results when a run fails.
type ErrorDocument struct {
	Error string `json:"error" yaml:"error"`
}

// StructuredRenderer writes results as JSON or YAML for scripting.
// Unknown task fields are carried through.
type StructuredRenderer struct {
	out    io.Writer
	errOut io.Writer
	format Format
	mu     sync.Mutex
}

// NewStructuredRenderer writes results to out and errors to errOut.
func NewStructuredRenderer(out, errOut io.Writer, format Format) (*StructuredRenderer, error) {
	if format != FormatJSON && format != FormatYAML {
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return &StructuredRenderer{out: out, errOut: errOut, format: format}, nil
}

func (r *StructuredRenderer) Render(tasks []models.RankedTask, strategy models.Strategy) error {
	if tasks == nil {
		tasks = []models.RankedTask{}
	}
	return r.write(r.out, ResultDocument{Strategy: strategy, Tasks: tasks})
}

// Reset is a no-op; output is a stream of documents.
func (r *StructuredRenderer) Reset() {}

func (r *StructuredRenderer) ShowError(msg string) {
	_ = r.write(r.errOut, ErrorDocument{Error: msg})
}

func (r *StructuredRenderer) write(w io.Writer, doc any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := Encode(doc, r.format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Encode renders v in format. YAML output is derived from the JSON encoding
// so custom marshalers (and preserved task fields) apply to both.
func Encode(v any, format Format) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode results: %w", err)
	}
	if format == FormatJSON {
		return append(data, '\n'), nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("convert results to yaml: %w", err)
	}
	blockStyle(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return out, nil
}

// blockStyle clears the flow collections and quoting JSON input leaves
// behind; the encoder re-quotes strings that would otherwise change type.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
