package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"restaurant-chatbot-be/internal/dto"
	"restaurant-chatbot-be/pkg/dialog"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

type turn struct {
	text   string
	intent string
	params map[string]interface{}
}

// script walks every flow once: an order, a status check, a reservation,
// a feedback message and a support ticket.
var script = []turn{
	{text: "2 chicken biryani and 1 pepsi", intent: dialog.IntentPlaceOrder},
	{text: "where is my order", intent: dialog.IntentCheckOrderStatus},
	{text: "1001", intent: dialog.IntentCheckOrderStatus},
	{text: "how much is nihari", intent: dialog.IntentProductDetails},
	{text: "book a table for 4", intent: dialog.IntentMakeReservation},
	{text: "June 15 at 7 PM", intent: dialog.IntentMakeReservation},
	{text: "I want to give feedback", intent: dialog.FeedbackIntentPrefix},
	{text: "Ayesha", intent: dialog.FeedbackIntentPrefix},
	{text: "skip", intent: dialog.FeedbackIntentPrefix},
	{text: "The karahi was excellent", intent: dialog.FeedbackIntentPrefix},
	{text: "my card payment failed", intent: dialog.SupportIntentPrefix},
}

func main() {
	baseURL := flag.String("url", "http://localhost:8000/webhook", "fulfillment endpoint")
	flag.Parse()

	session := "projects/simulation/agent/sessions/" + uuid.NewString()
	color.Cyan("🚀 Restaurant webhook simulation")
	color.Cyan("Session: %s\n", session)

	client := &http.Client{Timeout: 10 * time.Second}
	for i, t := range script {
		color.Yellow("\n[%d] GUEST (%s): %s", i+1, t.intent, t.text)

		start := time.Now()
		res, err := send(client, *baseURL, &dto.WebhookRequest{
			ResponseId: uuid.NewString(),
			Session:    session,
			QueryResult: dto.QueryResult{
				QueryText:  t.text,
				Parameters: t.params,
				Intent:     dto.IntentRef{DisplayName: t.intent},
			},
		})
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}

		color.Green("BOT (%v): %s", time.Since(start).Round(time.Millisecond), res.FulfillmentText)
		if res.Payload != nil {
			for _, row := range res.Payload.RichContent {
				for _, el := range row {
					for _, opt := range el.Options {
						color.White("  [chip] %s", opt.Text)
					}
				}
			}
		}
	}
}

func send(client *http.Client, url string, req *dto.WebhookRequest) (*dto.WebhookResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, raw)
	}

	var out dto.WebhookResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
