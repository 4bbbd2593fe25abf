package models

// Building represents a campus building. Some buildings (e.g. grounds or
// single-level annexes) have no floors; rooms there attach to the building
// directly.
type Building struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	HasFloors   bool   `json:"has_floors" gorm:"default:true"`
	TotalFloors int    `json:"total_floors" gorm:"default:0"`
	Description string `json:"description" gorm:"type:text"`
}

type Floor struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	BuildingID uint   `json:"building_id" gorm:"not null;uniqueIndex:idx_building_floor_number"`
	Number     int    `json:"number" gorm:"not null;uniqueIndex:idx_building_floor_number"`
	Label      string `json:"label" gorm:"size:50;not null"` // e.g. "Ground Floor", "2nd Floor"

	Building Building `json:"-" gorm:"foreignKey:BuildingID;constraint:OnDelete:CASCADE"`
}

type Room struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	BuildingID uint   `json:"building_id" gorm:"not null"`
	FloorID    *uint  `json:"floor_id"` // nil for ground-level buildings
	Name       string `json:"name" gorm:"size:100;not null"`
	RoomType   string `json:"room_type" gorm:"size:50;default:'other'"` // classroom, laboratory, office, restroom, storage, utility, other

	Building Building `json:"-" gorm:"foreignKey:BuildingID;constraint:OnDelete:CASCADE"`
	Floor    *Floor   `json:"-" gorm:"foreignKey:FloorID;constraint:OnDelete:CASCADE"`
}
