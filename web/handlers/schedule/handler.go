package schedule

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"teamop.dk/bosted/core"
	"teamop.dk/bosted/model"
	"teamop.dk/bosted/utils"
	web "teamop.dk/bosted/web/common"
	"teamop.dk/bosted/web/middlewares"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Service interface {
	Shifts(ctx context.Context, userEmail string, todayOnly bool) ([]model.Shift, error)
	StaffOnShift(ctx context.Context, userEmail string) ([]model.User, error)
	Activities(ctx context.Context, userEmail string, upcomingOnly bool, limit int) ([]model.Activity, error)
}

type Registrar interface {
	Register(ctx context.Context, activityID int, userID string, register bool) error
}

type Endpoint struct {
	service   Service
	registrar Registrar
}

func Register(r gin.IRoutes, service Service, registrar Registrar) {
	endpoint := &Endpoint{service: service, registrar: registrar}
	r.GET("/shifts", endpoint.ListShifts)
	r.GET("/shifts/export", endpoint.ExportShifts)
	r.GET("/staff-on-shift", endpoint.StaffOnShift)
	r.GET("/activities", endpoint.ListActivities)
	r.POST("/activities/:id/registration", endpoint.Registration)
}

type ShiftQuery struct {
	Today bool `form:"today"`
}

type ActivityQuery struct {
	Upcoming bool `form:"upcoming"`
	Limit    int  `form:"limit" binding:"min=0,max=100"`
}

type RegistrationDTO struct {
	Register *bool `json:"register" binding:"required"`
}

// email is the facility filter: the logged in staff member's email.
func email(c *gin.Context) string {
	identity, _ := middlewares.Identity(c)
	return identity.Email
}

func (ep *Endpoint) ListShifts(c *gin.Context) {
	var query ShiftQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	shifts, err := ep.service.Shifts(c.Request.Context(), email(c), query.Today)
	if err != nil {
		web.RespondError(c, "Kunne ikke hente vagtplan", err)
		return
	}

	c.JSON(http.StatusOK, web.NewSearchResponse(utils.Map(shifts, toShiftDTO)))
}

func (ep *Endpoint) ExportShifts(c *gin.Context) {
	var query ShiftQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	shifts, err := ep.service.Shifts(c.Request.Context(), email(c), query.Today)
	if err != nil {
		web.RespondError(c, "Kunne ikke hente vagtplan", err)
		return
	}

	var buf bytes.Buffer
	if err := core.ExportShiftPlan(shifts, &buf); err != nil {
		web.RespondError(c, "Kunne ikke eksportere vagtplan", err)
		return
	}

	filename := fmt.Sprintf("vagtplan-%s.xlsx", time.Now().Format(time.DateOnly))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (ep *Endpoint) StaffOnShift(c *gin.Context) {
	staff, err := ep.service.StaffOnShift(c.Request.Context(), email(c))
	if err != nil {
		web.RespondError(c, "Kunne ikke hente personale på vagt", err)
		return
	}
	c.JSON(http.StatusOK, web.NewSearchResponse(toUserDTOs(staff)))
}

func (ep *Endpoint) ListActivities(c *gin.Context) {
	var query ActivityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	activities, err := ep.service.Activities(c.Request.Context(), email(c), query.Upcoming, query.Limit)
	if err != nil {
		web.RespondError(c, "Kunne ikke hente aktiviteter", err)
		return
	}

	c.JSON(http.StatusOK, web.NewSearchResponse(utils.Map(activities, toActivityDTO)))
}

func (ep *Endpoint) Registration(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.InvalidIDMessage))
		return
	}

	var body RegistrationDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	identity, _ := middlewares.Identity(c)
	if err := ep.registrar.Register(c.Request.Context(), id, identity.UserID, *body.Register); err != nil {
		web.RespondError(c, "Kunne ikke opdatere tilmelding", err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}
