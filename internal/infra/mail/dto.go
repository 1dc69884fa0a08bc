package mail

// Message is the outbound envelope handed to a Sender: one recipient, a
// fixed subject and the same content in two renderings.
type Message struct {
	From     string
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}
