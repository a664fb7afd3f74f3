package cfg

type Cfg struct {
	// Discord configuration
	DiscordToken   string
	DiscordChannel string

	// Google Calendar configuration
	CalendarID      string
	CredentialsFile string
	Timezone        string

	// Application configuration
	DatabasePath    string
	RulesFile       string
	TesseractBinary string
	OCRLanguage     string
	Port            string
	APIAccessKey    string

	// Application metadata
	Debug   bool
	Version string
}
