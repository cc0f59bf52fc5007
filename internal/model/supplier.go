package model

import "github.com/google/uuid"

// Supplier is a vendor purchase orders are issued to.
type Supplier struct {
	BaseModel
	Name          string       `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	ContactPerson string       `gorm:"type:varchar(255)" json:"contact_person"`
	PhoneNumber   string       `gorm:"type:varchar(20)" json:"phone_number"`
	PaymentTermID *uuid.UUID   `gorm:"type:uuid;index" json:"payment_term_id"`
	PaymentTerm   *PaymentTerm `gorm:"foreignKey:PaymentTermID" json:"payment_term,omitempty"`
	IsActive      bool         `gorm:"default:true" json:"is_active"`
}
