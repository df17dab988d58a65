package appointment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agendaclinic/scheduling-api/internal/handler"
	"github.com/agendaclinic/scheduling-api/internal/middleware"
	"github.com/agendaclinic/scheduling-api/internal/model"
	"github.com/agendaclinic/scheduling-api/internal/service/scheduling"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *scheduling.Service
}

func NewHandler(service *scheduling.Service) *Handler {
	return &Handler{service: service}
}

// UpsertAppointment is the single write operation: create without an id,
// update with one. All failure classification happens in the service.
func (h *Handler) UpsertAppointment(c *gin.Context) {
	clinicID, ok := middleware.ClinicID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing clinic identity"))
		return
	}

	var req model.UpsertAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid request body"))
		return
	}

	appt, err := h.service.Upsert(c.Request.Context(), clinicID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	status := http.StatusCreated
	if req.ID != "" {
		status = http.StatusOK
	}
	c.JSON(status, handler.NewSuccessResponse(appt))
}

// GetAvailableSlots returns the bookable times for a doctor on a date,
// recomputed on every call.
func (h *Handler) GetAvailableSlots(c *gin.Context) {
	clinicID, ok := middleware.ClinicID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing clinic identity"))
		return
	}

	doctorID, err := uuid.Parse(c.Query("doctor_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid date format"))
		return
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), clinicID, doctorID, date)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"doctor_id": doctorID,
		"date":      date.Format(dateLayout),
		"slots":     slots,
	}))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	clinicID, ok := middleware.ClinicID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing clinic identity"))
		return
	}

	filters := &model.AppointmentFilters{}

	if id := c.Query("doctor_id"); id != "" {
		doctorID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
			return
		}
		filters.DoctorID = doctorID
	}

	if id := c.Query("patient_id"); id != "" {
		patientID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
			return
		}
		filters.PatientID = patientID
	}

	if d := c.Query("start_date"); d != "" {
		start, err := time.Parse(dateLayout, d)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid start date"))
			return
		}
		filters.StartDate = start
	}

	if d := c.Query("end_date"); d != "" {
		end, err := time.Parse(dateLayout, d)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid end date"))
			return
		}
		filters.EndDate = end
	}

	appts, err := h.service.List(c.Request.Context(), clinicID, filters)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appts))
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	clinicID, ok := middleware.ClinicID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing clinic identity"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), clinicID, id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("/availability", h.GetAvailableSlots)
		appointments.POST("", h.UpsertAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}
