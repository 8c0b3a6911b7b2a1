package state

import (
	"restaurant-chatbot-be/internal/pkg/logger"
	"restaurant-chatbot-be/pkg/store"
)

// Manager moves a session between flows and keeps only one of them active.
type Manager struct {
	logger logger.ILogger
}

func NewManager(logger logger.ILogger) *Manager {
	return &Manager{logger: logger}
}

// Begin makes flow the active one. Another active flow is abandoned and
// its slots cleared. It reports whether flow was newly entered.
func (m *Manager) Begin(session *store.Session, flow store.Flow) bool {
	current := session.ActiveFlow
	if current == flow {
		return false
	}
	if current != store.FlowNone && current != "" {
		reset(session, current)
		m.logger.Warn("DIALOG", "Flow overridden", map[string]interface{}{
			"session_id": session.ID,
			"from":       string(current),
			"to":         string(flow),
		})
	}
	session.ActiveFlow = flow
	m.logger.Debug("DIALOG", "Flow started", map[string]interface{}{
		"session_id": session.ID,
		"flow":       string(flow),
	})
	return true
}

// Finish clears the slots of flow and leaves the session idle.
func (m *Manager) Finish(session *store.Session, flow store.Flow) {
	reset(session, flow)
	m.logger.Debug("DIALOG", "Flow finished", map[string]interface{}{
		"session_id": session.ID,
		"flow":       string(flow),
	})
}

// Cancel abandons whatever flow is active and returns it.
func (m *Manager) Cancel(session *store.Session) store.Flow {
	flow := session.ActiveFlow
	if flow == store.FlowNone || flow == "" {
		return store.FlowNone
	}
	reset(session, flow)
	m.logger.Info("DIALOG", "Flow cancelled", map[string]interface{}{
		"session_id": session.ID,
		"flow":       string(flow),
	})
	return flow
}

func reset(session *store.Session, flow store.Flow) {
	switch flow {
	case store.FlowReservation:
		session.ResetReservation()
	case store.FlowFeedback:
		session.ResetFeedback()
	case store.FlowSupport:
		session.ResetSupport()
	}
}
