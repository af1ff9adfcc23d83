package reconcile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"dbwizard/internal/schema"
)

// ErrInvalidConfiguration is returned when an imported document is not a configuration.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// DecodeConfiguration reads a previously exported configuration. Both the tables and
// the procedures key must be present.
func DecodeConfiguration(r io.Reader) (schema.Configuration, error) {
	var doc struct {
		Tables     *[]schema.Table     `json:"tables"`
		Procedures *[]schema.Procedure `json:"procedures"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return schema.Configuration{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	switch {
	case doc.Tables == nil:
		return schema.Configuration{}, fmt.Errorf("%w: missing key %q", ErrInvalidConfiguration, "tables")
	case doc.Procedures == nil:
		return schema.Configuration{}, fmt.Errorf("%w: missing key %q", ErrInvalidConfiguration, "procedures")
	}
	return schema.Configuration{Tables: *doc.Tables, Procedures: *doc.Procedures}, nil
}
