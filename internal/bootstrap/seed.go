package bootstrap

import (
	"fmt"
	"log"

	"anoa.com/skinannotator/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Annotator{},
		&entity.Annotation{},
		&entity.AnnotatorStat{},
	)
}

// SeedAnnotations registers images from..to (inclusive) as pending records.
// Existing records are left untouched. It returns the number of rows inserted.
func SeedAnnotations(db *gorm.DB, from, to int64) (int64, error) {
	if from <= 0 || to < from {
		return 0, fmt.Errorf("invalid image range %d..%d", from, to)
	}

	const batchSize = 500

	var inserted int64
	for start := from; start <= to; start += batchSize {
		end := start + batchSize - 1
		if end > to {
			end = to
		}

		batch := make([]entity.Annotation, 0, end-start+1)
		for id := start; id <= end; id++ {
			batch = append(batch, entity.Annotation{ImgID: id, Status: entity.StatusPending})
		}

		result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&batch)
		if result.Error != nil {
			return inserted, result.Error
		}
		inserted += result.RowsAffected
	}

	log.Printf("[SEED] %d annotation records inserted for range %d..%d", inserted, from, to)
	return inserted, nil
}
