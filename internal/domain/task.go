package domain

import "github.com/google/uuid"

// TaskStatus represents the workflow state of a task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusCanceled   TaskStatus = "canceled"
)

// Task represents a unit of work within a card
type Task struct {
	BaseModel
	CardID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_tasks_card_id" json:"cardId"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(50);not null" json:"status"`
}

// TableName specifies the table name for Task
func (Task) TableName() string {
	return "tasks"
}

// Assignment links a board member to a task
type Assignment struct {
	BaseModel
	TaskID   uuid.UUID `gorm:"type:uuid;not null;index:idx_assignments_task_id;uniqueIndex:uq_assignments_task_member" json:"taskId"`
	MemberID uuid.UUID `gorm:"type:uuid;not null;index:idx_assignments_member_id;uniqueIndex:uq_assignments_task_member" json:"memberId"`
}

// TableName specifies the table name for Assignment
func (Assignment) TableName() string {
	return "assignments"
}
