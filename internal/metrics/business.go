package metrics

// IncrementBoardCreated increments board creation counter
func (m *Metrics) IncrementBoardCreated() {
	m.safeExecute("IncrementBoardCreated", func() {
		m.BoardCreatedTotal.Inc()
	})
}

// IncrementCardCreated increments card creation counter
func (m *Metrics) IncrementCardCreated() {
	m.safeExecute("IncrementCardCreated", func() {
		m.CardCreatedTotal.Inc()
	})
}

// IncrementTaskCreated increments task creation counter
func (m *Metrics) IncrementTaskCreated() {
	m.safeExecute("IncrementTaskCreated", func() {
		m.TaskCreatedTotal.Inc()
	})
}

// IncrementInvitationSent increments invitation counter
func (m *Metrics) IncrementInvitationSent() {
	m.safeExecute("IncrementInvitationSent", func() {
		m.InvitationSentTotal.Inc()
	})
}

// IncrementCascadeDelete increments cascade delete counter for an entity kind
func (m *Metrics) IncrementCascadeDelete(entity string) {
	m.safeExecute("IncrementCascadeDelete", func() {
		m.CascadeDeleteTotal.WithLabelValues(entity).Inc()
	})
}

// IncrementVerification increments verification counter with a result label
func (m *Metrics) IncrementVerification(result string) {
	m.safeExecute("IncrementVerification", func() {
		m.VerificationsTotal.WithLabelValues(result).Inc()
	})
}

// SetBoardsTotal sets total boards gauge
func (m *Metrics) SetBoardsTotal(count int64) {
	m.safeExecute("SetBoardsTotal", func() {
		m.BoardsTotal.Set(float64(count))
	})
}

// SetCardsTotal sets total cards gauge
func (m *Metrics) SetCardsTotal(count int64) {
	m.safeExecute("SetCardsTotal", func() {
		m.CardsTotal.Set(float64(count))
	})
}

// SetTasksTotal sets total tasks gauge
func (m *Metrics) SetTasksTotal(count int64) {
	m.safeExecute("SetTasksTotal", func() {
		m.TasksTotal.Set(float64(count))
	})
}
