package models

import "time"

// BillOfQuantity is one budgeted scope item on a project. completed_scope
// accumulates from daily measurements.
type BillOfQuantity struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	ProjectID uint     `gorm:"not null;index" json:"project_id"`
	Project   *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`

	ItemName string `gorm:"type:varchar(255);not null" json:"item_name"`
	Unit     string `gorm:"type:varchar(50)" json:"unit"` // "SFT", "RFT"

	MaterialRequiredPerUnit float64 `gorm:"not null;default:0" json:"material_required_per_unit"`
	TotalMaterialUsed       float64 `gorm:"not null;default:0" json:"total_material_used"`

	TotalScope     float64 `gorm:"not null;default:0" json:"total_scope"`
	Rate           float64 `gorm:"not null;default:0" json:"rate"`
	CompletedScope float64 `gorm:"not null;default:0" json:"completed_scope"`
	GstRate        float64 `gorm:"not null;default:18" json:"gst_rate"`

	LastUpdated time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}

// CurrentBillValue is the value of work done so far.
func (b *BillOfQuantity) CurrentBillValue() float64 {
	return b.CompletedScope * b.Rate
}
