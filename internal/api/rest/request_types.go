package rest

import (
	domain "github.com/complianceworks/sanctions-screening-backend/internal/domain/screening"
)

// ScreenRequest is the body of POST /api/v1/screen
type ScreenRequest struct {
	FullName    string `json:"full_name" validate:"required,max=512"`
	NationalID  string `json:"national_id" validate:"omitempty,max=64"`
	Country     string `json:"country" validate:"omitempty,len=2,alpha"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Nationality string `json:"nationality" validate:"omitempty,len=2,alpha"`
}

func (r ScreenRequest) toInput() domain.Input {
	return domain.Input{
		FullName:    r.FullName,
		NationalID:  r.NationalID,
		Country:     r.Country,
		DateOfBirth: r.DateOfBirth,
		Nationality: r.Nationality,
	}
}

// BulkScreenRequest is the body of POST /api/v1/screen/bulk. The record
// count cap is enforced by the engine, not here, so the limit lives in one
// place.
type BulkScreenRequest struct {
	Records []ScreenRequest `json:"records" validate:"required,min=1,dive"`
}

func (r BulkScreenRequest) toInputs() []domain.Input {
	inputs := make([]domain.Input, len(r.Records))
	for i, rec := range r.Records {
		inputs[i] = rec.toInput()
	}
	return inputs
}
