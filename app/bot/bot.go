package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"shiftcal/app/processor"
)

var imageExtensions = []string{".png", ".jpg", ".jpeg"}

// Bot listens for schedule screenshots in one Discord channel and feeds
// them through the processor. Attachments within a message are handled
// sequentially; a failed attachment gets its error reply and processing
// continues with the next one.
type Bot struct {
	session     *discordgo.Session
	channelName string
	processor   *processor.Processor
	httpClient  *http.Client
}

func New(token, channelName string, proc *processor.Processor) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	b := &Bot{
		session:     session,
		channelName: channelName,
		processor:   proc,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
	session.AddHandler(b.onMessage)

	return b, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	slog.Info("Discord bot connected", "channel", b.channelName)
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID || len(m.Attachments) == 0 {
		return
	}

	channel, err := s.Channel(m.ChannelID)
	if err != nil {
		slog.Warn("Failed to look up channel", "channel_id", m.ChannelID, "error", err)
		return
	}
	if channel.Name != b.channelName {
		return
	}

	ctx := context.Background()

	for _, attachment := range m.Attachments {
		if !isImage(attachment.Filename) {
			continue
		}

		image, err := b.download(ctx, attachment.URL)
		if err != nil {
			slog.Error("Failed to download attachment",
				"message_id", m.ID, "filename", attachment.Filename, "error", err)
			b.reply(s, m.ChannelID, fmt.Sprintf("Sorry, I could not download %s.", attachment.Filename))
			continue
		}

		result := b.processor.Run(ctx, "discord:"+m.ID, attachment.Filename, image)
		b.reply(s, m.ChannelID, result.Reply)
	}
}

func (b *Bot) reply(s *discordgo.Session, channelID, message string) {
	if _, err := s.ChannelMessageSend(channelID, message); err != nil {
		slog.Error("Failed to send reply", "channel_id", channelID, "error", err)
	}
}

func (b *Bot) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

func isImage(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
