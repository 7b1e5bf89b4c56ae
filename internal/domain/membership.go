package domain

import "github.com/google/uuid"

// Membership links a user to a board and grants read/write access
type Membership struct {
	BaseModel
	BoardID  uuid.UUID `gorm:"type:uuid;not null;index:idx_memberships_board_id;uniqueIndex:uq_memberships_board_member" json:"boardId"`
	MemberID uuid.UUID `gorm:"type:uuid;not null;index:idx_memberships_member_id;uniqueIndex:uq_memberships_board_member" json:"memberId"`
}

// TableName specifies the table name for Membership
func (Membership) TableName() string {
	return "memberships"
}

// Invitation is a pending request for a user (by email) to join a board.
// Existence means pending; the row is deleted on accept or reject.
type Invitation struct {
	BaseModel
	BoardOwnerID uuid.UUID `gorm:"type:uuid;not null" json:"boardOwnerId"`
	BoardID      uuid.UUID `gorm:"type:uuid;not null;index:idx_invitations_board_id;uniqueIndex:uq_invitations_board_email" json:"boardId"`
	MemberEmail  string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_invitations_board_email" json:"memberEmail"`
}

// TableName specifies the table name for Invitation
func (Invitation) TableName() string {
	return "invitations"
}
