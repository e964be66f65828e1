package models

// MessageRecord is the indexed metadata for one message in the archive. Only
// header-derived fields are kept; message bodies are never stored. The ID is
// assigned at insertion, so id order is archive order.
type MessageRecord struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Size        uint64 `gorm:"not null" json:"size"`
	FromAddress string `gorm:"column:from_address;size:255;index" json:"from_address"`
	Date        int64  `gorm:"not null;index" json:"date"`
	RawDate     string `gorm:"column:raw_date" json:"raw_date,omitempty"`
	Subject     string `json:"subject"`
}

// TableName returns the table name for MessageRecord
func (MessageRecord) TableName() string {
	return "mail"
}
