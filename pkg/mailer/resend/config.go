package resend

// Config holds Resend credentials.
type Config struct {
	APIKey string `env:"RESEND_API_KEY" yaml:"api_key"`
}
