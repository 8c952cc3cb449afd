package model

import "gorm.io/gorm"

// Client - локальный клиент. Пара (Name, FirstName) уникальна.
type Client struct {
	gorm.Model
	Name      string  `json:"nom" gorm:"type:varchar(255);not null;uniqueIndex:client_name_first_name_unique"`
	FirstName string  `json:"prenom" gorm:"type:varchar(255);not null;uniqueIndex:client_name_first_name_unique"`
	Phone     string  `json:"telephone" gorm:"type:varchar(32)"`
	Address   string  `json:"adresse" gorm:"type:varchar(255)"`
	Meters    []Meter `json:"-"`
}
