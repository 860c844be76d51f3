package dto

import (
	"github.com/Suly-ms/ThisIsNotFine/internal/domain/school"
)

type SchoolResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func FromSchool(s school.School) SchoolResponse {
	return SchoolResponse{ID: s.ID, Name: s.Name, Latitude: s.Latitude, Longitude: s.Longitude}
}

func FromSchools(schools []school.School) []SchoolResponse {
	out := make([]SchoolResponse, 0, len(schools))
	for _, s := range schools {
		out = append(out, FromSchool(s))
	}
	return out
}
