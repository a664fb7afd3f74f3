package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Discord configuration
	DiscordToken   string `long:"discord-token" env:"DISCORD_BOT_TOKEN" description:"Discord bot token (required)" required:"true"`
	DiscordChannel string `long:"discord-channel" env:"DISCORD_CHANNEL" default:"work-calendar" description:"Name of the channel watched for schedule screenshots"`

	// Google Calendar configuration
	CalendarID      string `long:"calendar-id" env:"CALENDAR_ID" default:"primary" description:"Google Calendar ID to reconcile shifts into"`
	CredentialsFile string `long:"credentials-file" env:"GOOGLE_CREDENTIALS_FILE" default:"/creds/service-account-key.json" description:"Path to the service account key file"`
	Timezone        string `long:"timezone" env:"TZ" default:"UTC" description:"IANA timezone for calendar events (e.g. America/Phoenix)"`

	// Application configuration
	DatabasePath    string `long:"db-path" env:"DATABASE_PATH" default:"./shiftcal.db" description:"Path to the sqlite database file"`
	RulesFile       string `long:"rules-file" env:"RULES_FILE" description:"YAML file overriding the schedule parsing rules (optional)"`
	TesseractBinary string `long:"tesseract-binary" env:"TESSERACT_BINARY" default:"tesseract" description:"Path to the tesseract binary"`
	OCRLanguage     string `long:"ocr-language" env:"OCR_LANGUAGE" default:"eng" description:"Tesseract language code"`
	Port            string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey    string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the upload endpoint (optional)"`

	// Application metadata
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DiscordToken:    raw.DiscordToken,
		DiscordChannel:  raw.DiscordChannel,
		CalendarID:      raw.CalendarID,
		CredentialsFile: raw.CredentialsFile,
		Timezone:        raw.Timezone,
		DatabasePath:    raw.DatabasePath,
		RulesFile:       raw.RulesFile,
		TesseractBinary: raw.TesseractBinary,
		OCRLanguage:     raw.OCRLanguage,
		Port:            raw.Port,
		APIAccessKey:    raw.APIAccessKey,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone == "" {
		return nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}
	time.Local = loc
	return nil
}
