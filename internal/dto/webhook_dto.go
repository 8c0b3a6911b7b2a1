package dto

// WebhookRequest is the Dialogflow ES fulfillment request. Only the fields
// the dialog engine reads are mapped. A missing session falls back to the
// default session rather than failing the turn.
type WebhookRequest struct {
	ResponseId  string      `json:"responseId" validate:"omitempty,max=256,printascii"`
	Session     string      `json:"session"`
	QueryResult QueryResult `json:"queryResult"`
}

type QueryResult struct {
	QueryText                 string                 `json:"queryText"`
	LanguageCode              string                 `json:"languageCode,omitempty"`
	Parameters                map[string]interface{} `json:"parameters"`
	Intent                    IntentRef              `json:"intent"`
	IntentDetectionConfidence float64                `json:"intentDetectionConfidence,omitempty"`
}

type IntentRef struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName"`
}

type WebhookResponse struct {
	FulfillmentText string       `json:"fulfillmentText"`
	Payload         *RichPayload `json:"payload,omitempty"`
}

// RichPayload is the Dialogflow Messenger custom payload.
type RichPayload struct {
	RichContent [][]RichElement `json:"richContent"`
}

type RichElement struct {
	Type    string       `json:"type"`
	Title   string       `json:"title,omitempty"`
	Text    []string     `json:"text,omitempty"`
	Options []ChipOption `json:"options,omitempty"`
}

type ChipOption struct {
	Text       string            `json:"text"`
	Intent     string            `json:"intent,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty"`
}
