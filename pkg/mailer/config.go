package mailer

// Config holds sender defaults and template settings.
type Config struct {
	From            string `env:"MAIL_FROM" envDefault:"noreply@localhost" yaml:"from"`
	FromName        string `env:"MAIL_FROM_NAME" yaml:"from_name"`
	FallbackSubject string `env:"MAIL_FALLBACK_SUBJECT" envDefault:"Notification" yaml:"fallback_subject"`
	DefaultLayout   string `env:"MAIL_DEFAULT_LAYOUT" envDefault:"base.html" yaml:"default_layout"`
}

// Sender returns the formatted default sender address.
func (c Config) Sender() string {
	return Recipient(c.FromName, c.From)
}
