// Package screening holds the engine's result model: the screened subject,
// scored match candidates, per-subject results, and the bulk report. All of
// it is immutable once created and safe to hand to report renderers as-is.
package screening

import (
	"strings"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
)

// Input is a single subject to check against the sanctions lists. The
// caller builds it with field names already mapped to this canonical set;
// source-format aliasing (nombre/name, cedula/document) is a collaborator
// responsibility and never reaches the engine.
type Input struct {
	FullName    string `json:"full_name"`
	NationalID  string `json:"national_id,omitempty"`
	Country     string `json:"country,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Nationality string `json:"nationality,omitempty"`
}

// Validate checks the input before screening. An empty subject name is an
// input validation error, never a silent "no hit".
func (in Input) Validate() error {
	if strings.TrimSpace(in.FullName) == "" {
		return errors.ErrEmptyName
	}
	return nil
}
