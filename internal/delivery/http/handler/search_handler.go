package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Suly-ms/ThisIsNotFine/internal/delivery/http/dto"
	"github.com/Suly-ms/ThisIsNotFine/internal/delivery/http/middleware"
	"github.com/Suly-ms/ThisIsNotFine/internal/pkg/response"
	"github.com/Suly-ms/ThisIsNotFine/internal/usecase/search"
)

type SearchHandler struct {
	search *search.Service
}

func NewSearchHandler(searchSvc *search.Service) *SearchHandler {
	return &SearchHandler{search: searchSvc}
}

func (h *SearchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/students", h.Students)
}

func (h *SearchHandler) Students(c fiber.Ctx) error {
	rows, err := h.search.Students(c.Context(), c.Query("q"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromStudentRows(rows))
}
