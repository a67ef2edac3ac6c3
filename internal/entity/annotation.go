package entity

import "time"

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
	StatusSkipped    = "skipped"
)

// Annotation is one image to annotate. Status drives the claim lifecycle:
// pending -> in_progress -> done | skipped | pending.
type Annotation struct {
	ImgID       int64   `gorm:"primaryKey;autoIncrement:false" json:"img_id"`
	Status      string  `gorm:"size:20;not null;default:pending;index" json:"status"`
	AnnotatorID *string `gorm:"type:text;index" json:"annotator_id"`

	AgeCategory          *string  `gorm:"size:64" json:"age_category"`
	Gender               *string  `gorm:"size:64" json:"gender"`
	Ethnicity            *string  `gorm:"size:64" json:"ethnicity"`
	SkinTypePrimary      *string  `gorm:"size:64" json:"skin_type_primary"`
	SkinTypeSecondary    *string  `gorm:"size:64" json:"skin_type_secondary"`
	AcnePresent          *bool    `json:"acne_present"`
	AcneSeverity         *string  `gorm:"size:64" json:"acne_severity"`
	Blackheads           *bool    `json:"blackheads"`
	Whiteheads           *bool    `json:"whiteheads"`
	Papules              *bool    `json:"papules"`
	Pustules             *bool    `json:"pustules"`
	Nodules              *bool    `json:"nodules"`
	ScarringAcne         *bool    `json:"scarring_acne"`
	PigmentationPresent  *bool    `json:"pigmentation_present"`
	PigmentationType     *string  `gorm:"size:64" json:"pigmentation_type"`
	RednessLevel         *string  `gorm:"size:64" json:"redness_level"`
	Pores                *string  `gorm:"size:64" json:"pores"`
	Texture              *string  `gorm:"size:64" json:"texture"`
	Shine                *string  `gorm:"size:64" json:"shine"`
	DehydrationSigns     *bool    `json:"dehydration_signs"`
	WrinkleScore         *int     `json:"wrinkle_score"`
	RegionWrinkles       *string  `gorm:"size:64" json:"region_wrinkles"`
	SkinRegion           *string  `gorm:"size:64" json:"skin_region"`
	HasMakeup            *bool    `json:"has_makeup"`
	Notes                *string  `gorm:"type:text" json:"notes"`
	BlurScore            *float64 `json:"blur_score"`
	AnnotationConfidence *int     `json:"annotation_confidence"`

	AnnotationTimestamp *time.Time `json:"annotation_timestamp"`
}

func (Annotation) TableName() string {
	return "annotations"
}
