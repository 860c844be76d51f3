package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Suly-ms/ThisIsNotFine/internal/delivery/http/dto"
	"github.com/Suly-ms/ThisIsNotFine/internal/delivery/http/middleware"
	"github.com/Suly-ms/ThisIsNotFine/internal/domain/account"
	"github.com/Suly-ms/ThisIsNotFine/internal/infrastructure/storage"
	"github.com/Suly-ms/ThisIsNotFine/internal/pkg/response"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/profile"
)

type ProfileHandler struct {
	profiles *profile.Service
	cvs      *storage.CVStorage
	cookies  *SessionCookie
}

func NewProfileHandler(profiles *profile.Service, cvs *storage.CVStorage, cookies *SessionCookie) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, cvs: cvs, cookies: cookies}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.Me)
	r.Put("/me/profile", h.UpdateProfile)
	r.Put("/me/password", h.ChangePassword)
	r.Delete("/me/profile", h.DeleteMe)
}

func (h *ProfileHandler) Me(c fiber.Ctx) error {
	a, ok := middleware.AccountFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	me, err := h.profiles.Me(c.Context(), a.ID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromMe(me))
}

func (h *ProfileHandler) UpdateProfile(c fiber.Ctx) error {
	a, ok := middleware.AccountFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	if a.Role == account.RoleCompany {
		return h.updateCompanyProfile(c, a)
	}
	return h.updateStudentProfile(c, a)
}

type companyProfileRequest struct {
	CompanyName        string `json:"companyName" form:"companyName"`
	CompanyWebsite     string `json:"companyWebsite" form:"companyWebsite"`
	CompanyDescription string `json:"companyDescription" form:"companyDescription"`
}

func (h *ProfileHandler) updateCompanyProfile(c fiber.Ctx, a account.Account) error {
	var req companyProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if strings.TrimSpace(req.CompanyName) == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Company name required", nil, nil)
	}

	updated, err := h.profiles.UpdateCompanyProfile(c.Context(), a.ID, profile.CompanyUpdate{
		Name:        strings.TrimSpace(req.CompanyName),
		Website:     optionalString(req.CompanyWebsite),
		Description: optionalString(req.CompanyDescription),
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCompanyProfile(updated))
}

type studentProfileRequest struct {
	SearchType   string `json:"searchType" form:"searchType"`
	SearchStatus string `json:"searchStatus" form:"searchStatus"`
	Bio          string `json:"bio" form:"bio"`
	StudyDomain  string `json:"studyDomain" form:"studyDomain"`
	Linkedin     string `json:"linkedin" form:"linkedin"`
	Github       string `json:"github" form:"github"`
	Portfolio    string `json:"portfolio" form:"portfolio"`
}

func (h *ProfileHandler) updateStudentProfile(c fiber.Ctx, a account.Account) error {
	var req studentProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	update := profile.StudentUpdate{
		SearchType:   req.SearchType,
		SearchStatus: req.SearchStatus,
		Bio:          optionalString(req.Bio),
		StudyDomain:  optionalString(req.StudyDomain),
		Linkedin:     optionalString(req.Linkedin),
		Github:       optionalString(req.Github),
		Portfolio:    optionalString(req.Portfolio),
	}

	// Optional CV upload rides along on multipart requests.
	if fh, err := c.FormFile("cv"); err == nil && fh != nil {
		path, err := h.cvs.Save(fh)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrNotPDF), errors.Is(err, storage.ErrTooLarge), errors.Is(err, storage.ErrEmptyFile):
				return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
			default:
				return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
			}
		}
		update.CVPath = &path
	}

	updated, err := h.profiles.UpdateStudentProfile(c.Context(), a.ID, update)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromStudentProfile(updated))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *ProfileHandler) ChangePassword(c fiber.Ctx) error {
	a, ok := middleware.AccountFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req changePasswordRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	err := h.profiles.ChangePassword(c.Context(), a.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrWrongPassword):
			return middleware.NewAppError(fiber.StatusBadRequest, "Mot de passe actuel incorrect", nil, err)
		case errors.Is(err, profile.ErrWeakPassword):
			return middleware.NewAppError(fiber.StatusBadRequest, "Mot de passe trop court", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ProfileHandler) DeleteMe(c fiber.Ctx) error {
	a, ok := middleware.AccountFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	if err := h.profiles.DeleteMe(c.Context(), a.ID); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	h.cookies.Clear(c)
	return response.Success(c, fiber.StatusOK, "Compte supprimé", nil)
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
