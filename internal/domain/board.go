package domain

import "github.com/google/uuid"

// Board represents a task board owned by a single user.
// Access to a board's data is always gated by a Membership row,
// including for the owner (the owner membership is created with the board).
type Board struct {
	BaseModel
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_boards_owner_id" json:"ownerId"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
}

// TableName specifies the table name for Board
func (Board) TableName() string {
	return "boards"
}
