package store

import "time"

// Flow names the multi-turn dialog a session is currently inside.
type Flow string

const (
	FlowNone        Flow = "none"
	FlowReservation Flow = "reservation"
	FlowFeedback    Flow = "feedback"
	FlowSupport     Flow = "support"
)

// Awaiting is the slot pointer of the feedback and support flows.
type Awaiting string

const (
	AwaitNone        Awaiting = "none"
	AwaitName        Awaiting = "name"
	AwaitPhone       Awaiting = "phone"
	AwaitText        Awaiting = "text"
	AwaitIssueType   Awaiting = "issue_type"
	AwaitDescription Awaiting = "description"
)

// ReservationSlots holds the reservation flow. Guests is 1..20 once set.
type ReservationSlots struct {
	Guests       *int    `json:"guests"`
	DatetimeText *string `json:"datetime_text"`
	RetryCount   int     `json:"retry_count"`
}

type FeedbackSlots struct {
	Name     *string  `json:"name"`
	Phone    *string  `json:"phone"`
	Text     *string  `json:"text"`
	Awaiting Awaiting `json:"awaiting"`
}

type SupportSlots struct {
	Name        *string  `json:"name"`
	Phone       *string  `json:"phone"`
	IssueType   *string  `json:"issue_type"`
	Description *string  `json:"description"`
	Awaiting    Awaiting `json:"awaiting"`
}

// Session is the in-memory conversation record for one platform session id.
type Session struct {
	ID string `json:"id"`

	// ActiveFlow is the single flow allowed to own the conversation.
	ActiveFlow Flow `json:"active_flow"`

	// AwaitingOrderID is set after a status request that carried no order id.
	AwaitingOrderID bool `json:"awaiting_order_id"`

	Reservation ReservationSlots `json:"reservation"`
	Feedback    FeedbackSlots    `json:"feedback"`
	Support     SupportSlots     `json:"support"`

	LastIntent string    `json:"last_intent"`
	TurnCount  int       `json:"turn_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewSession returns a record with every slot group at its default.
func NewSession(id string, now time.Time) *Session {
	s := &Session{ID: id, CreatedAt: now, UpdatedAt: now}
	s.ResetAll()
	return s
}

func (s *Session) ResetReservation() {
	s.Reservation = ReservationSlots{}
	if s.ActiveFlow == FlowReservation {
		s.ActiveFlow = FlowNone
	}
}

func (s *Session) ResetFeedback() {
	s.Feedback = FeedbackSlots{Awaiting: AwaitNone}
	if s.ActiveFlow == FlowFeedback {
		s.ActiveFlow = FlowNone
	}
}

func (s *Session) ResetSupport() {
	s.Support = SupportSlots{Awaiting: AwaitNone}
	if s.ActiveFlow == FlowSupport {
		s.ActiveFlow = FlowNone
	}
}

// ResetAll clears every slot group and the order-status flag.
func (s *Session) ResetAll() {
	s.ResetReservation()
	s.ResetFeedback()
	s.ResetSupport()
	s.AwaitingOrderID = false
	s.ActiveFlow = FlowNone
}

// Clone returns a deep copy safe to hand to readers outside the turn lock.
func (s *Session) Clone() *Session {
	c := *s
	c.Reservation.Guests = cloneInt(s.Reservation.Guests)
	c.Reservation.DatetimeText = cloneString(s.Reservation.DatetimeText)
	c.Feedback.Name = cloneString(s.Feedback.Name)
	c.Feedback.Phone = cloneString(s.Feedback.Phone)
	c.Feedback.Text = cloneString(s.Feedback.Text)
	c.Support.Name = cloneString(s.Support.Name)
	c.Support.Phone = cloneString(s.Support.Phone)
	c.Support.IssueType = cloneString(s.Support.IssueType)
	c.Support.Description = cloneString(s.Support.Description)
	return &c
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// StringPtr is a small helper for optional slot values.
func StringPtr(v string) *string { return &v }

// IntPtr is the int counterpart of StringPtr.
func IntPtr(v int) *int { return &v }
