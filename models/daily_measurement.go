package models

type DailyMeasurement struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	BoqID          uint            `gorm:"not null;index" json:"boq_id"`
	BoqItem        *BillOfQuantity `gorm:"foreignKey:BoqID" json:"boq_item,omitempty"`
	Date           string          `gorm:"type:varchar(10);not null" json:"date"` // "2006-01-02"
	Length         float64         `gorm:"not null;default:0" json:"length"`
	Height         float64         `gorm:"not null;default:0" json:"height"` // width for SFT items
	Quantity       float64         `gorm:"not null;default:0" json:"quantity"`
	Remarks        string          `gorm:"type:text" json:"remarks"`
	SupervisorName string          `gorm:"type:varchar(255)" json:"supervisor_name"`
}
