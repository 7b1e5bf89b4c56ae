package job

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"boardman-api/internal/metrics"
)

// CleanupJob sweeps orphaned rows left behind by interrupted cascade
// deletes: children whose parent row no longer exists.
type CleanupJob struct {
	db      *gorm.DB
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(db *gorm.DB, m *metrics.Metrics, logger *zap.Logger) *CleanupJob {
	return &CleanupJob{
		db:      db,
		metrics: m,
		logger:  logger,
	}
}

// sweep is one parent/child relation to clean
type sweep struct {
	table     string
	parentCol string
	parent    string
}

// Run executes the sweep, walking relations top-down so rows orphaned by
// an earlier sweep in the same pass are caught by the later ones
func (j *CleanupJob) Run() {
	j.logger.Info("Starting orphan sweep")

	sweeps := []sweep{
		{"memberships", "board_id", "boards"},
		{"invitations", "board_id", "boards"},
		{"cards", "board_id", "boards"},
		{"tasks", "card_id", "cards"},
		{"assignments", "task_id", "tasks"},
		{"attachments", "task_id", "tasks"},
	}

	total := int64(0)
	for _, s := range sweeps {
		res := j.db.Exec(
			"DELETE FROM " + s.table + " WHERE " + s.parentCol + " NOT IN (SELECT id FROM " + s.parent + ")",
		)
		if res.Error != nil {
			j.logger.Error("Orphan sweep failed",
				zap.String("table", s.table),
				zap.Error(res.Error),
			)
			continue
		}
		if res.RowsAffected > 0 {
			j.logger.Warn("Removed orphaned rows",
				zap.String("table", s.table),
				zap.Int64("count", res.RowsAffected),
			)
			if j.metrics != nil {
				j.metrics.IncrementCascadeDelete("orphan_" + s.table)
			}
			total += res.RowsAffected
		}
	}

	j.logger.Info("Orphan sweep completed", zap.Int64("removed", total))
}
