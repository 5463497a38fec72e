package reminders

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"teamop.dk/bosted/core"
	"teamop.dk/bosted/model"
	web "teamop.dk/bosted/web/common"
)

type Service interface {
	Medicines(ctx context.Context) ([]model.Medicine, error)
	CreateMedicine(ctx context.Context, medicine *model.Medicine) error
	ReplaceMedicineReminders(ctx context.Context, medicineID int, reminders []model.Reminder) (*model.Medicine, error)
	UpdateMedicineSnoozeType(ctx context.Context, medicineID int, snooze model.SnoozeType) (*model.Medicine, error)
	DeleteMedicine(ctx context.Context, medicineID int) error

	ToothbrushReminders(ctx context.Context) ([]model.ToothbrushReminder, error)
	AddToothbrushReminder(ctx context.Context, hour, minute int) (*model.ToothbrushReminder, error)
	SetToothbrushReminderEnabled(ctx context.Context, id string, enabled bool) (*model.ToothbrushReminder, error)
	DeleteToothbrushReminder(ctx context.Context, id string) error
}

type Endpoint struct {
	service        Service
	toothbrushCode string
}

// Register mounts the medicine and toothbrush reminder routes. toothbrushCode
// is what the QR code on the bathroom mirror decodes to.
func Register(r gin.IRoutes, service Service, toothbrushCode string) {
	endpoint := &Endpoint{service: service, toothbrushCode: toothbrushCode}

	r.GET("/medicines", endpoint.ListMedicines)
	r.POST("/medicines", endpoint.CreateMedicine)
	r.PUT("/medicines/:id/reminders", endpoint.ReplaceReminders)
	r.PUT("/medicines/:id/snooze", endpoint.UpdateSnooze)
	r.DELETE("/medicines/:id", endpoint.DeleteMedicine)

	r.GET("/toothbrush-reminders", endpoint.ListToothbrush)
	r.POST("/toothbrush-reminders", endpoint.CreateToothbrush)
	r.POST("/toothbrush-reminders/verify", endpoint.VerifyToothbrush)
	r.PATCH("/toothbrush-reminders/:id", endpoint.UpdateToothbrush)
	r.DELETE("/toothbrush-reminders/:id", endpoint.DeleteToothbrush)
}

func medicineID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.InvalidIDMessage))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return false
	}
	return true
}

type ToothbrushDTO struct {
	Hour   *int `json:"hour" binding:"required,min=0,max=23"`
	Minute *int `json:"minute" binding:"required,min=0,max=59"`
}

type ToothbrushUpdateDTO struct {
	IsEnabled *bool `json:"isEnabled" binding:"required"`
}

type ScanDTO struct {
	Code string `json:"code" binding:"required"`
}

func (ep *Endpoint) ListToothbrush(c *gin.Context) {
	reminders, err := ep.service.ToothbrushReminders(c.Request.Context())
	if err != nil {
		web.RespondError(c, "Kunne ikke indlæse påmindelser", err)
		return
	}
	c.JSON(http.StatusOK, web.NewSearchResponse(reminders))
}

func (ep *Endpoint) CreateToothbrush(c *gin.Context) {
	var body ToothbrushDTO
	if !bindJSON(c, &body) {
		return
	}
	reminder, err := ep.service.AddToothbrushReminder(c.Request.Context(), *body.Hour, *body.Minute)
	if err != nil {
		web.RespondError(c, "Kunne ikke gemme påmindelse", err)
		return
	}
	c.JSON(http.StatusCreated, web.NewSuccessResponse(reminder))
}

func (ep *Endpoint) UpdateToothbrush(c *gin.Context) {
	var body ToothbrushUpdateDTO
	if !bindJSON(c, &body) {
		return
	}
	reminder, err := ep.service.SetToothbrushReminderEnabled(c.Request.Context(), c.Param("id"), *body.IsEnabled)
	if err != nil {
		web.RespondError(c, "Kunne ikke opdatere påmindelse", err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(reminder))
}

func (ep *Endpoint) DeleteToothbrush(c *gin.Context) {
	if err := ep.service.DeleteToothbrushReminder(c.Request.Context(), c.Param("id")); err != nil {
		web.RespondError(c, "Kunne ikke slette påmindelse", err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}

func (ep *Endpoint) VerifyToothbrush(c *gin.Context) {
	var body ScanDTO
	if !bindJSON(c, &body) {
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{
		"verified": core.VerifyToothbrushScan(body.Code, ep.toothbrushCode),
	}))
}
