package main

import (
	"log"

	"campus-maintenance-server/config"
	"campus-maintenance-server/database"
	"campus-maintenance-server/models"
	"campus-maintenance-server/utils"
)

// seedLocations fills the directory with the campus layout when the
// buildings table is empty. Operators extend it directly in the database.
func seedLocations() error {
	db := database.GetDB()

	var count int64
	if err := db.Model(&models.Building{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	buildings := []models.Building{
		{
			Name:        "Annex Building",
			HasFloors:   true,
			TotalFloors: 4,
			Description: "Main classroom annex with laboratories on the upper floors",
		},
		{
			Name:        "New Building",
			HasFloors:   true,
			TotalFloors: 3,
			Description: "Faculty offices and lecture halls",
		},
		{
			Name:        "DFA Building",
			HasFloors:   false,
			Description: "Ground-level administrative building",
		},
		{
			Name:        "Grounds",
			HasFloors:   false,
			Description: "Outdoor areas, walkways and sports facilities",
		},
	}

	for i := range buildings {
		if err := db.Create(&buildings[i]).Error; err != nil {
			return err
		}

		if !buildings[i].HasFloors {
			continue
		}

		for n := 1; n <= buildings[i].TotalFloors; n++ {
			floor := models.Floor{
				BuildingID: buildings[i].ID,
				Number:     n,
				Label:      floorLabel(n),
			}
			if err := db.Create(&floor).Error; err != nil {
				return err
			}
		}
	}

	log.Printf("✅ Seeded %d buildings into the location directory", len(buildings))
	return nil
}

func floorLabel(n int) string {
	switch n {
	case 1:
		return "Ground Floor"
	case 2:
		return "2nd Floor"
	case 3:
		return "3rd Floor"
	default:
		return "4th Floor"
	}
}

// seedAdminUser creates the initial admin account from the environment when
// no admin exists yet. Registration only ever produces requester accounts,
// so without this seed nobody could manage roles.
func seedAdminUser() error {
	cfg := config.AppConfig.Admin
	if cfg.Email == "" || cfg.Password == "" {
		log.Println("⚠️ ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	db := database.GetDB()

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	admin := models.User{
		FullName:     cfg.FullName,
		Email:        cfg.Email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded admin account %s", admin.Email)
	return nil
}
