package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Suly-ms/ThisIsNotFine/internal/delivery/http/dto"
	"github.com/Suly-ms/ThisIsNotFine/internal/delivery/http/middleware"
	"github.com/Suly-ms/ThisIsNotFine/internal/pkg/response"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/moderation"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/verification"
)

type AdminHandler struct {
	verification *verification.Service
	moderation   *moderation.Service
}

func NewAdminHandler(verificationSvc *verification.Service, moderationSvc *moderation.Service) *AdminHandler {
	return &AdminHandler{verification: verificationSvc, moderation: moderationSvc}
}

// RegisterRoutes expects a router already guarded by RequireAdmin.
func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/pending-companies", h.PendingCompanies)
	r.Post("/verify-company/:id", h.VerifyCompany)
	r.Post("/reject-company/:id", h.RejectCompany)
	r.Get("/users", h.Users)
	r.Post("/users/:id/ban", h.Ban)
	r.Post("/users/:id/unban", h.Unban)
	r.Delete("/users/:id", h.DeleteUser)
}

func (h *AdminHandler) PendingCompanies(c fiber.Ctx) error {
	pending, err := h.verification.ListPendingCompanies(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}

	out := make([]dto.PendingCompanyResponse, 0, len(pending))
	for _, pc := range pending {
		item := dto.PendingCompanyResponse{
			ID:        pc.Account.ID,
			FirstName: pc.Account.FirstName,
			LastName:  pc.Account.LastName,
			Email:     pc.Account.Email,
			CreatedAt: pc.Account.CreatedAt,
		}
		if pc.Profile != nil {
			p := dto.FromCompanyProfile(*pc.Profile)
			item.Profile = &p
		}
		out = append(out, item)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *AdminHandler) VerifyCompany(c fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}

	if err := h.verification.ApproveCompany(c.Context(), id); err != nil {
		if errors.Is(err, verification.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, "Entreprise validée", nil)
}

func (h *AdminHandler) RejectCompany(c fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}

	if err := h.verification.RejectCompany(c.Context(), id); err != nil {
		if errors.Is(err, verification.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, "Entreprise rejetée et supprimée", nil)
}

func (h *AdminHandler) Users(c fiber.Ctx) error {
	users, err := h.moderation.ListUsers(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}

	out := make([]dto.AdminUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.FromAccountForAdmin(u))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

type banRequest struct {
	DurationDays int  `json:"durationDays"`
	Indefinite   bool `json:"indefinite"`
}

func (h *AdminHandler) Ban(c fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}

	var req banRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	until, err := h.moderation.Ban(c.Context(), id, moderation.BanInput{
		DurationDays: req.DurationDays,
		Indefinite:   req.Indefinite,
	})
	if err != nil {
		switch {
		case errors.Is(err, moderation.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "Ban duration required", nil, err)
		case errors.Is(err, moderation.ErrAdminImmune):
			return middleware.NewAppError(fiber.StatusForbidden, "Administrators cannot be banned", nil, err)
		case errors.Is(err, moderation.ErrNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
	}
	return response.Success(c, fiber.StatusOK, "Utilisateur banni", fiber.Map{"banExpiresAt": until})
}

func (h *AdminHandler) Unban(c fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}

	if err := h.moderation.Unban(c.Context(), id); err != nil {
		if errors.Is(err, moderation.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, "Utilisateur débanni", nil)
}

func (h *AdminHandler) DeleteUser(c fiber.Ctx) error {
	id, err := accountIDParam(c)
	if err != nil {
		return err
	}

	if err := h.moderation.DeleteAccount(c.Context(), id); err != nil {
		if errors.Is(err, moderation.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, "Utilisateur supprimé", nil)
}

func accountIDParam(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid account id", nil, err)
	}
	return id, nil
}
