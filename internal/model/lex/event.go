package lex

// Event is one inbound conversational turn as delivered by the bot platform.
type Event struct {
	MessageVersion    string            `json:"messageVersion,omitempty"`
	InvocationSource  string            `json:"invocationSource,omitempty"`
	UserID            string            `json:"userId"`
	InputTranscript   string            `json:"inputTranscript,omitempty"`
	OutputDialogMode  string            `json:"outputDialogMode,omitempty"`
	CurrentIntent     Intent            `json:"currentIntent"`
	Bot               Bot               `json:"bot"`
	SessionAttributes map[string]string `json:"sessionAttributes"`
	RequestAttributes map[string]string `json:"requestAttributes,omitempty"`
}

// Intent carries the recognized intent and its resolved slots.
type Intent struct {
	Name               string                `json:"name"`
	Slots              map[string]*string    `json:"slots,omitempty"`
	SlotDetails        map[string]SlotDetail `json:"slotDetails,omitempty"`
	ConfirmationStatus string                `json:"confirmationStatus,omitempty"`
}

// SlotDetail holds the original user value for a slot.
type SlotDetail struct {
	OriginalValue string `json:"originalValue,omitempty"`
}

// Bot identifies the bot that produced the event.
type Bot struct {
	Name    string `json:"name,omitempty"`
	Alias   string `json:"alias,omitempty"`
	Version string `json:"version,omitempty"`
}

// Slot returns the value of the named slot, or "" when absent or null.
func (e Event) Slot(name string) string {
	if e.CurrentIntent.Slots == nil {
		return ""
	}
	if v := e.CurrentIntent.Slots[name]; v != nil {
		return *v
	}
	return ""
}

// PlatformContext is the analytics view of a turn. It omits the user id.
type PlatformContext struct {
	CurrentIntent     Intent            `json:"currentIntent"`
	Bot               Bot               `json:"bot"`
	InvocationSource  string            `json:"invocationSource,omitempty"`
	OutputDialogMode  string            `json:"outputDialogMode,omitempty"`
	SessionAttributes map[string]string `json:"sessionAttributes"`
	RequestAttributes map[string]string `json:"requestAttributes,omitempty"`
}

// Redacted strips the raw identity from the event for analytics consumers.
func (e Event) Redacted() PlatformContext {
	return PlatformContext{
		CurrentIntent:     e.CurrentIntent,
		Bot:               e.Bot,
		InvocationSource:  e.InvocationSource,
		OutputDialogMode:  e.OutputDialogMode,
		SessionAttributes: e.SessionAttributes,
		RequestAttributes: e.RequestAttributes,
	}
}
