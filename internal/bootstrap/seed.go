package bootstrap

import (
	"log"

	"gorm.io/gorm"
	"sereno.app/mindgarden/internal/entity"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Profile{},
		&entity.ActivityLog{},
		&entity.GardenState{},
		&entity.AchievementUnlock{},
		&entity.MoodEntry{},
		&entity.JournalEntry{},
		&entity.GameSession{},
		&entity.GameProgress{},
		&entity.Resource{},
		&entity.Notification{},
	)
}

func SeedRoles(db *gorm.DB) error {
	defaultRoles := []entity.Role{
		{Name: entity.RoleAdmin, Description: "Super administrator"},
		{Name: entity.RoleMember, Description: "Regular member"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&entity.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func SeedAdminUser(db *gorm.DB) error {
	var adminRole entity.Role
	if err := db.Where("name = ?", entity.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", "admin@sereno.app").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	adminUser := entity.User{
		Username: "admin",
		Email:    "admin@sereno.app",
		RoleID:   &adminRole.ID,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	adminProfile := entity.Profile{
		UserID:      adminUser.ID,
		DisplayName: "Administrator",
	}

	if err := db.Create(&adminProfile).Error; err != nil {
		return err
	}

	log.Println("✅ Admin user seeded successfully")
	log.Println("   Email: admin@sereno.app")

	return nil
}

// SeedResources inserts a small starter library so a fresh install
// has something to browse before admins curate their own.
func SeedResources(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Resource{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	starter := []entity.Resource{
		{
			Title:    "Box Breathing in 4 Minutes",
			Summary:  "A guided 4-4-4-4 breathing exercise for quick grounding.",
			URL:      "https://sereno.app/library/box-breathing",
			Category: entity.ResourceExercise,
			Tags:     "breathing,anxiety,beginner",
		},
		{
			Title:    "Why Journaling Helps",
			Summary:  "A short article on expressive writing and mood regulation.",
			URL:      "https://sereno.app/library/why-journaling-helps",
			Category: entity.ResourceArticle,
			Tags:     "journaling,habits",
		},
		{
			Title:    "Rainforest Ambience",
			Summary:  "One hour of layered rain and birdsong for focus or sleep.",
			URL:      "https://sereno.app/library/rainforest-ambience",
			Category: entity.ResourceAudio,
			Tags:     "sleep,focus,ambience",
		},
	}

	for _, res := range starter {
		if err := db.Create(&res).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Starter resources seeded")
	return nil
}
