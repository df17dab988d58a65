package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agendaclinic/scheduling-api/internal/handler"
	"github.com/agendaclinic/scheduling-api/internal/middleware"
	"github.com/agendaclinic/scheduling-api/internal/repository"
)

type Handler struct {
	repo repository.PatientRepository
}

func NewHandler(repo repository.PatientRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) ListPatients(c *gin.Context) {
	clinicID, ok := middleware.ClinicID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing clinic identity"))
		return
	}

	patients, err := h.repo.List(c.Request.Context(), clinicID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/patients", h.ListPatients)
}
