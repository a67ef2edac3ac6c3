package dto

import "time"

// UpdateAnnotationRequest is a partial update. A nil field is left untouched.
// Status may only finish a claim; lock and unlock own pending and in_progress.
// AnnotatorID is accepted for older clients but always replaced by the caller.
type UpdateAnnotationRequest struct {
	Status              *string    `json:"status" binding:"omitempty,oneof=done skipped"`
	AnnotationTimestamp *time.Time `json:"annotation_timestamp"`
	AnnotatorID         *string    `json:"annotator_id"`

	AgeCategory          *string  `json:"age_category" binding:"omitempty,max=64"`
	Gender               *string  `json:"gender" binding:"omitempty,max=64"`
	Ethnicity            *string  `json:"ethnicity" binding:"omitempty,max=64"`
	SkinTypePrimary      *string  `json:"skin_type_primary" binding:"omitempty,max=64"`
	SkinTypeSecondary    *string  `json:"skin_type_secondary" binding:"omitempty,max=64"`
	AcnePresent          *bool    `json:"acne_present"`
	AcneSeverity         *string  `json:"acne_severity" binding:"omitempty,max=64"`
	Blackheads           *bool    `json:"blackheads"`
	Whiteheads           *bool    `json:"whiteheads"`
	Papules              *bool    `json:"papules"`
	Pustules             *bool    `json:"pustules"`
	Nodules              *bool    `json:"nodules"`
	ScarringAcne         *bool    `json:"scarring_acne"`
	PigmentationPresent  *bool    `json:"pigmentation_present"`
	PigmentationType     *string  `json:"pigmentation_type" binding:"omitempty,max=64"`
	RednessLevel         *string  `json:"redness_level" binding:"omitempty,max=64"`
	Pores                *string  `json:"pores" binding:"omitempty,max=64"`
	Texture              *string  `json:"texture" binding:"omitempty,max=64"`
	Shine                *string  `json:"shine" binding:"omitempty,max=64"`
	DehydrationSigns     *bool    `json:"dehydration_signs"`
	WrinkleScore         *int     `json:"wrinkle_score" binding:"omitempty,gte=0,lte=10"`
	RegionWrinkles       *string  `json:"region_wrinkles" binding:"omitempty,max=64"`
	SkinRegion           *string  `json:"skin_region" binding:"omitempty,max=64"`
	HasMakeup            *bool    `json:"has_makeup"`
	Notes                *string  `json:"notes" binding:"omitempty,max=2000"`
	BlurScore            *float64 `json:"blur_score" binding:"omitempty,gte=0,lte=1"`
	AnnotationConfidence *int     `json:"annotation_confidence" binding:"omitempty,gte=1,lte=5"`
}

// Columns maps every non-nil field to its column. AnnotatorID is never
// included.
func (r *UpdateAnnotationRequest) Columns() map[string]interface{} {
	cols := make(map[string]interface{})

	str := func(name string, v *string) {
		if v != nil {
			cols[name] = *v
		}
	}
	flag := func(name string, v *bool) {
		if v != nil {
			cols[name] = *v
		}
	}
	num := func(name string, v *int) {
		if v != nil {
			cols[name] = *v
		}
	}

	str("status", r.Status)
	if r.AnnotationTimestamp != nil {
		cols["annotation_timestamp"] = *r.AnnotationTimestamp
	}

	str("age_category", r.AgeCategory)
	str("gender", r.Gender)
	str("ethnicity", r.Ethnicity)
	str("skin_type_primary", r.SkinTypePrimary)
	str("skin_type_secondary", r.SkinTypeSecondary)
	flag("acne_present", r.AcnePresent)
	str("acne_severity", r.AcneSeverity)
	flag("blackheads", r.Blackheads)
	flag("whiteheads", r.Whiteheads)
	flag("papules", r.Papules)
	flag("pustules", r.Pustules)
	flag("nodules", r.Nodules)
	flag("scarring_acne", r.ScarringAcne)
	flag("pigmentation_present", r.PigmentationPresent)
	str("pigmentation_type", r.PigmentationType)
	str("redness_level", r.RednessLevel)
	str("pores", r.Pores)
	str("texture", r.Texture)
	str("shine", r.Shine)
	flag("dehydration_signs", r.DehydrationSigns)
	num("wrinkle_score", r.WrinkleScore)
	str("region_wrinkles", r.RegionWrinkles)
	str("skin_region", r.SkinRegion)
	flag("has_makeup", r.HasMakeup)
	str("notes", r.Notes)
	if r.BlurScore != nil {
		cols["blur_score"] = *r.BlurScore
	}
	num("annotation_confidence", r.AnnotationConfidence)

	return cols
}

type LockResponse struct {
	Success bool  `json:"success"`
	ImgID   int64 `json:"img_id"`
}

type AnnotationSummary struct {
	ImgID               int64      `json:"img_id"`
	Status              string     `json:"status"`
	AnnotatorID         *string    `json:"annotator_id"`
	AnnotationTimestamp *time.Time `json:"annotation_timestamp"`
}

type StatusCounts struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Done       int64 `json:"done"`
	Skipped    int64 `json:"skipped"`
}

type DiagnosticResponse struct {
	Stats      StatusCounts        `json:"stats"`
	InProgress []AnnotationSummary `json:"in_progress_sample"`
	Recent     []AnnotationSummary `json:"recent"`
}
