package dto

// StaffAlertMessage is queued on the in-process bus for the email consumer.
type StaffAlertMessage struct {
	EventId   string   `json:"event_id"`
	EventType string   `json:"event_type"`
	To        string   `json:"to"`
	Subject   string   `json:"subject"`
	Lines     []string `json:"lines"`
}
