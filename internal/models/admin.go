package models

// AdminUser can manage the reward catalog and wheel prizes.
type AdminUser struct {
	BaseModel
	Username     string `gorm:"uniqueIndex;size:64" json:"username"`
	PasswordHash string `json:"-"`
}
