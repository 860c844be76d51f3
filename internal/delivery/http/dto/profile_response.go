package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Suly-ms/ThisIsNotFine/internal/domain/account"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/profile"
)

type StudentProfileResponse struct {
	SearchType   string  `json:"searchType"`
	SearchStatus string  `json:"searchStatus"`
	Bio          *string `json:"bio"`
	StudyDomain  *string `json:"studyDomain"`
	Linkedin     *string `json:"linkedin"`
	Github       *string `json:"github"`
	Portfolio    *string `json:"portfolio"`
	CVPath       *string `json:"cvPath"`
}

func FromStudentProfile(p account.StudentProfile) StudentProfileResponse {
	return StudentProfileResponse{
		SearchType:   p.SearchType,
		SearchStatus: p.SearchStatus,
		Bio:          p.Bio,
		StudyDomain:  p.StudyDomain,
		Linkedin:     p.Linkedin,
		Github:       p.Github,
		Portfolio:    p.Portfolio,
		CVPath:       p.CVPath,
	}
}

type CompanyProfileResponse struct {
	Name        string  `json:"name"`
	Website     *string `json:"website"`
	Description *string `json:"description"`
}

func FromCompanyProfile(p account.CompanyProfile) CompanyProfileResponse {
	return CompanyProfileResponse{Name: p.Name, Website: p.Website, Description: p.Description}
}

type MeResponse struct {
	AccountResponse
	Profile        *StudentProfileResponse `json:"profile"`
	CompanyProfile *CompanyProfileResponse `json:"companyProfile"`
}

func FromMe(me profile.Me) MeResponse {
	out := MeResponse{AccountResponse: FromAccount(me.Account)}
	if me.StudentProfile != nil {
		p := FromStudentProfile(*me.StudentProfile)
		out.Profile = &p
	}
	if me.CompanyProfile != nil {
		p := FromCompanyProfile(*me.CompanyProfile)
		out.CompanyProfile = &p
	}
	return out
}

type PendingCompanyResponse struct {
	ID        uuid.UUID               `json:"id"`
	FirstName string                  `json:"firstName"`
	LastName  string                  `json:"lastName"`
	Email     string                  `json:"email"`
	CreatedAt time.Time               `json:"createdAt"`
	Profile   *CompanyProfileResponse `json:"companyProfile"`
}
