package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Suly-ms/ThisIsNotFine/internal/delivery/http/dto"
	"github.com/Suly-ms/ThisIsNotFine/internal/delivery/http/middleware"
	"github.com/Suly-ms/ThisIsNotFine/internal/pkg/response"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/school"
)

type SchoolHandler struct {
	schools *school.Service
	authMw  *middleware.AuthMiddleware
}

func NewSchoolHandler(schools *school.Service, authMw *middleware.AuthMiddleware) *SchoolHandler {
	return &SchoolHandler{schools: schools, authMw: authMw}
}

func (h *SchoolHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/schools", h.List)
	r.Post("/schools", h.Create, h.authMw.RequireAdmin())
	r.Get("/schools/:name/students", h.Students)
}

func (h *SchoolHandler) List(c fiber.Ctx) error {
	schools, err := h.schools.List(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromSchools(schools))
}

type createSchoolRequest struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *SchoolHandler) Create(c fiber.Ctx) error {
	var req createSchoolRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.schools.Create(c.Context(), req.Name, req.Latitude, req.Longitude)
	if err != nil {
		switch {
		case errors.Is(err, school.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "School name required", nil, err)
		case errors.Is(err, school.ErrDuplicateName):
			return middleware.NewAppError(fiber.StatusConflict, "School already exists", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromSchool(created))
}

func (h *SchoolHandler) Students(c fiber.Ctx) error {
	name := c.Params("name")

	students, err := h.schools.Students(c.Context(), name)
	if err != nil {
		if errors.Is(err, school.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "School not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromStudentRows(students))
}
