package domain

// User represents a verified account
type User struct {
	BaseModel
	Name   string `gorm:"type:varchar(255);not null" json:"name"`
	Email  string `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	Avatar string `gorm:"type:text" json:"avatar"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
