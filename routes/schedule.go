package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campus-maintenance-server/middleware"
	"campus-maintenance-server/models"
	"campus-maintenance-server/services"
)

// RegisterScheduleRoutes registers schedule and calendar routes
func RegisterScheduleRoutes(protected *gin.RouterGroup) {
	staff := protected.Group("")
	staff.Use(middleware.RequireRoles(models.RoleStaff, models.RoleAdmin))
	staff.POST("/schedule/:id", upsertSchedule)

	protected.GET("/calendar/month", calendarMonth)
}

// upsertSchedule creates or replaces the schedule for a request.
// 201 on create, 200 on update of the existing row.
func upsertSchedule(c *gin.Context) {
	id, ok := requestIDParam(c)
	if !ok {
		return
	}

	var input models.ScheduleUpsertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule, created, err := services.NewScheduleService().Upsert(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	status := http.StatusOK
	message := "Schedule updated successfully"
	if created {
		status = http.StatusCreated
		message = "Schedule created successfully"
	}

	c.JSON(status, gin.H{
		"message":  message,
		"created":  created,
		"schedule": schedule,
	})
}

// calendarMonth lists all schedules for a given year/month
func calendarMonth(c *gin.Context) {
	year, errYear := strconv.Atoi(c.Query("year"))
	month, errMonth := strconv.Atoi(c.Query("month"))
	if errYear != nil || errMonth != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month required"})
		return
	}

	schedules, err := services.NewScheduleService().QueryByMonth(year, month)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"schedules":   schedules,
		"total_count": len(schedules),
	})
}
