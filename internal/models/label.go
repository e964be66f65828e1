package models

// LabelAssignment links a message to one of its labels. A message always has
// at least one assignment; the normalizer supplies a sentinel label when the
// export carried no label header. The pair is the identity, there is no
// independent row id.
type LabelAssignment struct {
	MailID uint   `gorm:"column:mail_id;primaryKey;autoIncrement:false" json:"mail_id"`
	Label  string `gorm:"primaryKey;size:255" json:"label"`
}

// TableName returns the table name for LabelAssignment
func (LabelAssignment) TableName() string {
	return "labels"
}
