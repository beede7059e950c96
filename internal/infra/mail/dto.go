package mail

type ConversionEmailData struct {
	Name      string
	LeadID    int64
	PaidTotal int64
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
