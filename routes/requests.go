package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campus-maintenance-server/middleware"
	"campus-maintenance-server/models"
	"campus-maintenance-server/services"
)

// RegisterRequestRoutes registers all maintenance request routes.
// Creation allows anonymous callers; everything else needs a token.
func RegisterRequestRoutes(public, protected *gin.RouterGroup) {
	public.POST("/requests", createRequest)

	protected.GET("/requests", listRequests)
	protected.GET("/requests/:id", getRequest)

	staff := protected.Group("")
	staff.Use(middleware.RequireRoles(models.RoleStaff, models.RoleAdmin))
	staff.POST("/requests/:id/claim", claimRequest)
	staff.POST("/requests/:id/complete", completeRequest)

	admin := protected.Group("")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.POST("/requests/:id/update-status", updateRequestStatus)
}

func requestIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return 0, false
	}
	return uint(id), true
}

// createRequest submits a new maintenance request. Works with or without a
// token; an authenticated caller gets the account linked for later listing.
func createRequest(c *gin.Context) {
	var input models.MaintenanceRequestCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var createdBy *models.User
	if user, ok := middleware.CurrentUser(c); ok {
		createdBy = &user
	}

	request, err := services.NewRequestService().Create(input, createdBy)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Maintenance request submitted successfully",
		"request": request,
	})
}

// listRequests returns all requests for staff/admin, own requests otherwise
func listRequests(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	requests, err := services.NewRequestService().List(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests":    requests,
		"total_count": len(requests),
	})
}

func getRequest(c *gin.Context) {
	id, ok := requestIDParam(c)
	if !ok {
		return
	}

	request, err := services.NewRequestService().Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	if !user.IsStaff() && (request.CreatedByID == nil || *request.CreatedByID != user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": request})
}

// claimRequest takes ownership of a pending request; the caller becomes the
// assignee. First claim wins.
func claimRequest(c *gin.Context) {
	id, ok := requestIDParam(c)
	if !ok {
		return
	}

	user, _ := middleware.CurrentUser(c)

	request, err := services.NewRequestService().Claim(id, user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Request claimed successfully",
		"request": request,
	})
}

func completeRequest(c *gin.Context) {
	id, ok := requestIDParam(c)
	if !ok {
		return
	}

	var input models.CompleteRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, _ := middleware.CurrentUser(c)

	request, err := services.NewRequestService().Complete(id, input, user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Request completed",
		"request": request,
	})
}

// updateRequestStatus is the loose admin path: any subset of fields in one
// write, no claim precondition.
func updateRequestStatus(c *gin.Context) {
	id, ok := requestIDParam(c)
	if !ok {
		return
	}

	var input models.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := services.NewRequestService().UpdateStatus(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Request updated",
		"request": request,
	})
}
