package intent

// Name is a recognized intent.
type Name string

const (
	Hello            Name = "Hello"
	SendVcard        Name = "SendVcard"
	Help             Name = "Help"
	StorePassword    Name = "StorePassword"
	RetrievePassword Name = "RetrievePassword"
)

// Parse maps a platform intent name to a known Name.
func Parse(raw string) (Name, bool) {
	switch n := Name(raw); n {
	case Hello, SendVcard, Help, StorePassword, RetrievePassword:
		return n, true
	default:
		return "", false
	}
}

// applicationSlot holds the free-text application name for password intents.
const applicationSlot = "Application"

const (
	tmplHelloFirstTime   = "hello-firsttime.tmpl"
	tmplHello            = "hello.tmpl"
	tmplHelp             = "help.tmpl"
	tmplVcard            = "vcard.tmpl"
	tmplStore            = "store.tmpl"
	tmplRetrieve         = "retrieve.tmpl"
	tmplRetrieveSimilar  = "retrieve-similarfound.tmpl"
	tmplRetrieveNotFound = "retrieve-notfound.tmpl"
)

// unknownIntentMessage is the reply for intents this bot does not handle.
const unknownIntentMessage = "Sorry I'm not sure how to help with that."
