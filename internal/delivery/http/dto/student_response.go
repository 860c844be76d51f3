package dto

import (
	"github.com/google/uuid"

	"github.com/Suly-ms/ThisIsNotFine/internal/repository"
)

// StudentResponse is the discoverable view of a student: identity, profile
// and school, never credentials or verification state.
type StudentResponse struct {
	ID          uuid.UUID              `json:"id"`
	FirstName   string                 `json:"firstName"`
	LastName    string                 `json:"lastName"`
	SchoolID    *int64                 `json:"schoolId"`
	SchoolName  *string                `json:"schoolName"`
	Profile     StudentProfileResponse `json:"profile"`
}

func FromStudentRow(r repository.StudentRow) StudentResponse {
	return StudentResponse{
		ID:         r.ID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		SchoolID:   r.SchoolID,
		SchoolName: r.SchoolName,
		Profile: StudentProfileResponse{
			SearchType:   r.SearchType,
			SearchStatus: r.SearchStatus,
			Bio:          r.Bio,
			StudyDomain:  r.StudyDomain,
			Linkedin:     r.Linkedin,
			Github:       r.Github,
			Portfolio:    r.Portfolio,
			CVPath:       r.CVPath,
		},
	}
}

func FromStudentRows(rows []repository.StudentRow) []StudentResponse {
	out := make([]StudentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromStudentRow(r))
	}
	return out
}
