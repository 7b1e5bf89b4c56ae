package domain

import "github.com/google/uuid"

// AttachmentType enumerates the GitHub object kinds that can be linked to a task
type AttachmentType string

const (
	AttachmentTypePullRequest AttachmentType = "pull_request"
	AttachmentTypeCommit      AttachmentType = "commit"
	AttachmentTypeIssue       AttachmentType = "issue"
)

// IsValid reports whether t is one of the enumerated attachment types
func (t AttachmentType) IsValid() bool {
	switch t {
	case AttachmentTypePullRequest, AttachmentTypeCommit, AttachmentTypeIssue:
		return true
	}
	return false
}

// Attachment is a reference to an external GitHub object (PR, issue, commit)
// linked to a task. The type is fixed at creation.
type Attachment struct {
	BaseModel
	TaskID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_attachments_task_id" json:"taskId"`
	Type    AttachmentType `gorm:"type:varchar(50);not null" json:"type"`
	Number  string         `gorm:"type:varchar(255);not null" json:"number"`
	RepoID  int64          `gorm:"not null" json:"repoId"`
	RepoURL string         `gorm:"type:text;not null" json:"repoUrl"`
}

// TableName specifies the table name for Attachment
func (Attachment) TableName() string {
	return "attachments"
}
