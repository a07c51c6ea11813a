package lex

// FulfillmentState reports whether the intent was satisfied.
type FulfillmentState string

const (
	Fulfilled FulfillmentState = "Fulfilled"
	Failed    FulfillmentState = "Failed"
)

const (
	// DialogActionClose ends the turn; no further slot elicitation follows.
	DialogActionClose = "Close"
	ContentTypePlain  = "PlainText"
)

// Reply is the only artifact returned to the bot platform.
type Reply struct {
	SessionAttributes map[string]string `json:"sessionAttributes"`
	DialogAction      DialogAction      `json:"dialogAction"`
}

// DialogAction tells the platform how to conclude the turn.
type DialogAction struct {
	Type             string           `json:"type"`
	FulfillmentState FulfillmentState `json:"fulfillmentState"`
	Message          Message          `json:"message"`
}

// Message is the text sent back to the user.
type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Close builds a reply that concludes the turn with a plain-text message.
// Session attributes are returned as given.
func Close(sessionAttributes map[string]string, state FulfillmentState, content string) Reply {
	return Reply{
		SessionAttributes: sessionAttributes,
		DialogAction: DialogAction{
			Type:             DialogActionClose,
			FulfillmentState: state,
			Message: Message{
				ContentType: ContentTypePlain,
				Content:     content,
			},
		},
	}
}

// Content returns the message text of the reply.
func (r Reply) Content() string {
	return r.DialogAction.Message.Content
}
