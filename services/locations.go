package services

import (
	"errors"

	"gorm.io/gorm"

	"campus-maintenance-server/models"
)

// Location is the resolved building/floor/room triple a request points at.
// Resolution happens once at the boundary; business logic never re-checks
// which location fields are present.
type Location struct {
	Building models.Building
	Floor    *models.Floor
	Room     *models.Room
}

// ResolveLocation validates a location reference against the directory and
// enforces the containment hierarchy: a floor belongs to its building, a
// room belongs to its building, and a room's floor must match the given
// floor. Buildings without floors reject floor references entirely.
func ResolveLocation(db *gorm.DB, buildingID uint, floorID, roomID *uint) (*Location, error) {
	var building models.Building
	if err := db.First(&building, buildingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("building_id", "building does not exist")
		}
		return nil, err
	}

	loc := &Location{Building: building}

	if floorID != nil {
		if !building.HasFloors {
			return nil, NewIntegrityError("building has no floors, floor reference is not allowed")
		}
		var floor models.Floor
		if err := db.First(&floor, *floorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("floor_id", "floor does not exist")
			}
			return nil, err
		}
		if floor.BuildingID != building.ID {
			return nil, NewIntegrityError("floor does not belong to the given building")
		}
		loc.Floor = &floor
	}

	if roomID != nil {
		var room models.Room
		if err := db.First(&room, *roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("room_id", "room does not exist")
			}
			return nil, err
		}
		if room.BuildingID != building.ID {
			return nil, NewIntegrityError("room does not belong to the given building")
		}
		if room.FloorID != nil && floorID != nil && *room.FloorID != *floorID {
			return nil, NewIntegrityError("room is not on the given floor")
		}
		if room.FloorID != nil && !building.HasFloors {
			return nil, NewIntegrityError("room has a floor assigned but the building has no floors")
		}
		loc.Room = &room
	}

	return loc, nil
}
