package domain

import "github.com/google/uuid"

// Card represents a column of tasks within a board
type Card struct {
	BaseModel
	BoardID     uuid.UUID `gorm:"type:uuid;not null;index:idx_cards_board_id" json:"boardId"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
}

// TableName specifies the table name for Card
func (Card) TableName() string {
	return "cards"
}
