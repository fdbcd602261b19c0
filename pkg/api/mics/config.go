package mics

import (
	"encoding/json"
	"fmt"
	"time"
)

// Duration is a time.Duration which (un)marshals as a string like "90s".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts duration strings and the bare number 0.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		if n != 0 {
			return fmt.Errorf("duration %v needs a unit, like \"%vs\"", n, n)
		}
		d.Duration = 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"5m\": %v", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

type Config struct {
	Input    string `json:"input,omitempty" validate:"required"`
	FileType string `json:"fileType" validate:"required,oneof=csv txt"`
	// Timeout bounds the solver run, 0 means no limit.
	Timeout Duration `json:"timeout"`
	Workers int      `json:"workers,omitempty" validate:"min=0"`
	Output  string   `json:"output,omitempty" validate:"omitempty,oneof=text yaml json"`
}
