package reminders

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamop.dk/bosted/model"
	"teamop.dk/bosted/utils"
	web "teamop.dk/bosted/web/common"
)

type ReminderDTO struct {
	Hour      *int   `json:"hour" binding:"required,min=0,max=23"`
	Minute    *int   `json:"minute" binding:"required,min=0,max=59"`
	Dosage    int    `json:"dosage" binding:"omitempty,min=1"`
	IsEnabled *bool  `json:"isEnabled"`
	Unit      string `json:"unit"`
}

type MedicineDTO struct {
	Name            string             `json:"name" binding:"required"`
	TotalDailyDoses int                `json:"totalDailyDoses" binding:"min=0"`
	LocationName    string             `json:"locationName"`
	LocationLat     *float64           `json:"locationLat" binding:"omitempty,latitude"`
	LocationLng     *float64           `json:"locationLng" binding:"omitempty,longitude"`
	ReminderType    model.ReminderType `json:"reminderType" binding:"required,oneof=TIME_ONLY LOCATION_ONLY TIME_AND_LOCATION"`
	SnoozeType      model.SnoozeType   `json:"snoozeType" binding:"required,oneof=SINGLE SNOOZE_6_MIN"`
	Reminders       []ReminderDTO      `json:"reminders" binding:"dive"`
}

type SnoozeDTO struct {
	SnoozeType model.SnoozeType `json:"snoozeType" binding:"required,oneof=SINGLE SNOOZE_6_MIN"`
}

func (r ReminderDTO) toModel() model.Reminder {
	reminder := model.Reminder{
		Hour:      *r.Hour,
		Minute:    *r.Minute,
		Dosage:    r.Dosage,
		IsEnabled: r.IsEnabled == nil || *r.IsEnabled,
		Unit:      r.Unit,
	}
	if reminder.Dosage == 0 {
		reminder.Dosage = 1
	}
	return reminder
}

func (m MedicineDTO) toModel() *model.Medicine {
	return &model.Medicine{
		Name:            m.Name,
		TotalDailyDoses: m.TotalDailyDoses,
		LocationEnabled: m.ReminderType != model.ReminderTimeOnly,
		LocationName:    m.LocationName,
		LocationLat:     m.LocationLat,
		LocationLng:     m.LocationLng,
		ReminderType:    m.ReminderType,
		SnoozeType:      m.SnoozeType,
		Reminders:       utils.Map(m.Reminders, ReminderDTO.toModel),
	}
}

func (ep *Endpoint) ListMedicines(c *gin.Context) {
	medicines, err := ep.service.Medicines(c.Request.Context())
	if err != nil {
		web.RespondError(c, "Kunne ikke hente medicin", err)
		return
	}
	c.JSON(http.StatusOK, web.NewSearchResponse(medicines))
}

func (ep *Endpoint) CreateMedicine(c *gin.Context) {
	var body MedicineDTO
	if !bindJSON(c, &body) {
		return
	}
	if body.ReminderType == model.ReminderLocationOnly {
		body.Reminders = nil
		body.TotalDailyDoses = 0
	}

	medicine := body.toModel()
	if err := ep.service.CreateMedicine(c.Request.Context(), medicine); err != nil {
		web.RespondError(c, "Kunne ikke gemme medicin", err)
		return
	}
	c.JSON(http.StatusCreated, web.NewSuccessResponse(medicine))
}

func (ep *Endpoint) ReplaceReminders(c *gin.Context) {
	id, ok := medicineID(c)
	if !ok {
		return
	}
	var body []ReminderDTO
	if !bindJSON(c, &body) {
		return
	}

	medicine, err := ep.service.ReplaceMedicineReminders(c.Request.Context(), id, utils.Map(body, ReminderDTO.toModel))
	if err != nil {
		web.RespondError(c, "Kunne ikke opdatere medicinskema", err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(medicine))
}

func (ep *Endpoint) UpdateSnooze(c *gin.Context) {
	id, ok := medicineID(c)
	if !ok {
		return
	}
	var body SnoozeDTO
	if !bindJSON(c, &body) {
		return
	}
	medicine, err := ep.service.UpdateMedicineSnoozeType(c.Request.Context(), id, body.SnoozeType)
	if err != nil {
		web.RespondError(c, "Kunne ikke opdatere snooze indstillinger", err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(medicine))
}

func (ep *Endpoint) DeleteMedicine(c *gin.Context) {
	id, ok := medicineID(c)
	if !ok {
		return
	}
	if err := ep.service.DeleteMedicine(c.Request.Context(), id); err != nil {
		web.RespondError(c, "Kunne ikke slette medicin", err)
		return
	}
	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}
