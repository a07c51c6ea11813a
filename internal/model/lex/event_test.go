package lex

import (
	"encoding/json"
	"testing"
)

func TestEventSlotHandlesNullAndMissing(t *testing.T) {
	raw := `{"userId":"15551234567","currentIntent":{"name":"StorePassword","slots":{"Application":"Netflix","Other":null}}}`

	var event Event
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}

	if got := event.Slot("Application"); got != "Netflix" {
		t.Fatalf("expected Netflix, got %q", got)
	}
	if got := event.Slot("Other"); got != "" {
		t.Fatalf("expected empty for null slot, got %q", got)
	}
	if got := event.Slot("Missing"); got != "" {
		t.Fatalf("expected empty for missing slot, got %q", got)
	}
}

func TestRedactedOmitsUserID(t *testing.T) {
	event := Event{
		UserID:            "15551234567",
		InputTranscript:   "store netflix",
		CurrentIntent:     Intent{Name: "Hello"},
		SessionAttributes: map[string]string{"k": "v"},
	}

	data, err := json.Marshal(event.Redacted())
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if _, ok := fields["userId"]; ok {
		t.Fatalf("redacted context leaked userId: %s", data)
	}
	if _, ok := fields["sessionAttributes"]; !ok {
		t.Fatalf("redacted context missing sessionAttributes: %s", data)
	}
}

func TestCloseWireShape(t *testing.T) {
	attrs := map[string]string{"a": "1"}
	reply := Close(attrs, Fulfilled, "hi")

	data, err := json.Marshal(reply)
	if err != nil {
		t.Fatalf("marshal err: %v", err)
	}

	want := `{"sessionAttributes":{"a":"1"},"dialogAction":{"type":"Close","fulfillmentState":"Fulfilled","message":{"contentType":"PlainText","content":"hi"}}}`
	if string(data) != want {
		t.Fatalf("unexpected wire shape:\n got %s\nwant %s", data, want)
	}
}
