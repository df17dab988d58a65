package doctor

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/agendaclinic/scheduling-api/internal/handler"
	"github.com/agendaclinic/scheduling-api/internal/middleware"
	"github.com/agendaclinic/scheduling-api/internal/model"
	"github.com/agendaclinic/scheduling-api/internal/repository"
)

// The doctor directory feeds the booking form selects; names and prices go
// stale harmlessly, so a short TTL cache is fine here. Slot availability and
// tenant checks are never cached.
const directoryTTL = 30 * time.Second

type Handler struct {
	repo  repository.DoctorRepository
	cache *gocache.Cache
}

func NewHandler(repo repository.DoctorRepository) *Handler {
	return &Handler{
		repo:  repo,
		cache: gocache.New(directoryTTL, 5*time.Minute),
	}
}

func (h *Handler) ListDoctors(c *gin.Context) {
	clinicID, ok := middleware.ClinicID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing clinic identity"))
		return
	}

	if cached, found := h.cache.Get(cacheKey(clinicID)); found {
		c.JSON(http.StatusOK, handler.NewSuccessResponse(cached.([]*model.Doctor)))
		return
	}

	doctors, err := h.repo.List(c.Request.Context(), clinicID)
	if err != nil {
		c.Error(err)
		return
	}

	h.cache.Set(cacheKey(clinicID), doctors, gocache.DefaultExpiration)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func cacheKey(clinicID uuid.UUID) string {
	return "doctors:" + clinicID.String()
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/doctors", h.ListDoctors)
}
