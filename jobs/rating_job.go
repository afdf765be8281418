package jobs

import (
	"log"

	"github.com/proffinder/backend/models"
	"gorm.io/gorm"
)

// RecomputeTeacherRatings refreshes each profile's denormalized average
// rating from the ratings table. Ratings are append-only, so running
// this periodically is enough to keep the figure honest.
func RecomputeTeacherRatings(db *gorm.DB) {
	log.Println("Running job: RecomputeTeacherRatings...")

	var profiles []models.TeacherProfile
	if err := db.Preload("Ratings").Find(&profiles).Error; err != nil {
		log.Printf("Error loading profiles for rating recompute: %v", err)
		return
	}

	updated := 0
	for _, profile := range profiles {
		avg := averageRating(profile.Ratings)
		if avg == profile.AvgRating {
			continue
		}
		if err := db.Model(&models.TeacherProfile{}).
			Where("id = ?", profile.ID).
			Update("avg_rating", avg).Error; err != nil {
			log.Printf("Error updating avg rating for profile %s: %v", profile.ID, err)
			continue
		}
		updated++
	}

	if updated > 0 {
		log.Printf("Updated average rating for %d profile(s).", updated)
	}
}

func averageRating(ratings []models.Rating) float32 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	return float32(sum) / float32(len(ratings))
}
