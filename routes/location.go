package routes

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campus-maintenance-server/database"
	"campus-maintenance-server/models"
)

// RegisterLocationRoutes registers the read-only directory routes. The
// lifecycle core never mutates this data; it is maintained by seeding and
// operators working directly against the database.
func RegisterLocationRoutes(router *gin.RouterGroup) {
	location := router.Group("/location")
	location.GET("/buildings", listBuildings)
	location.GET("/:buildingId/floors", listFloors)
	location.GET("/:buildingId/rooms", listBuildingRooms) // ground-level buildings
	location.GET("/floors/:floorId/rooms", listFloorRooms)
}

func listBuildings(c *gin.Context) {
	var buildings []models.Building
	if err := database.DB.Order("name ASC").Find(&buildings).Error; err != nil {
		log.Printf("❌ Error fetching buildings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch buildings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"buildings": buildings})
}

func listFloors(c *gin.Context) {
	buildingID, err := strconv.ParseUint(c.Param("buildingId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid building ID"})
		return
	}

	var floors []models.Floor
	if err := database.DB.Where("building_id = ?", buildingID).Order("number ASC").Find(&floors).Error; err != nil {
		log.Printf("❌ Error fetching floors for building %d: %v", buildingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch floors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"floors": floors})
}

func listBuildingRooms(c *gin.Context) {
	buildingID, err := strconv.ParseUint(c.Param("buildingId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid building ID"})
		return
	}

	var rooms []models.Room
	if err := database.DB.Where("building_id = ?", buildingID).Order("name ASC").Find(&rooms).Error; err != nil {
		log.Printf("❌ Error fetching rooms for building %d: %v", buildingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func listFloorRooms(c *gin.Context) {
	floorID, err := strconv.ParseUint(c.Param("floorId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid floor ID"})
		return
	}

	var rooms []models.Room
	if err := database.DB.Where("floor_id = ?", floorID).Order("name ASC").Find(&rooms).Error; err != nil {
		log.Printf("❌ Error fetching rooms for floor %d: %v", floorID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}
