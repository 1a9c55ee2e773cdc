package domain

// EmailMessage matches the notification gateway's /send-email contract.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	// Kind labels the message for metrics and logs (welcome, purchase, reset).
	Kind string `json:"-"`
}

// EmailSender delivers a single message, blocking until the gateway answers.
type EmailSender interface {
	Send(msg *EmailMessage) error
}

// EmailDispatcher queues messages for best-effort background delivery.
// Enqueue never blocks; a full queue drops the message.
type EmailDispatcher interface {
	Enqueue(msg *EmailMessage) bool
}
