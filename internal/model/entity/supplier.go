package entity

import (
	"time"
)

// Supplier 供应商实体
type Supplier struct {
	ID                 string     `json:"id" gorm:"primaryKey;size:32"`
	Name               string     `json:"name" gorm:"size:128;not null"`
	ContactPerson      string     `json:"contact_person" gorm:"size:64"`
	Email              string     `json:"email" gorm:"size:128"`
	Phone              string     `json:"phone" gorm:"size:32"`
	CpfCnpj            string     `json:"cpf_cnpj" gorm:"size:32"`
	InscricaoEstadual  string     `json:"inscricao_estadual" gorm:"size:32"`
	Address            JSONB      `json:"address" gorm:"type:jsonb"`
	Rating             int        `json:"rating" gorm:"not null;default:0"`
	Notes              string     `json:"notes" gorm:"type:text"`
	IsActive           bool       `json:"is_active" gorm:"not null;default:true"`
	CreatedBy          string     `json:"created_by" gorm:"size:32"`
	UpdatedBy          string     `json:"updated_by" gorm:"size:32"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	DeletedAt          *time.Time `json:"deleted_at" gorm:"index"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
