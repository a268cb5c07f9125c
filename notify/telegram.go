// Package notify delivers best-effort operator notifications. Failures are
// logged and never surfaced to the trading paths that post them.
package notify

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/evdnx/gosb/logger"
)

// Notifier is the outbound message sink.
type Notifier interface {
	Send(text string)
}

// Telegram posts messages through the bot sendMessage endpoint.
type Telegram struct {
	apiURL string
	chatID string
	client *http.Client
	log    logger.Logger
}

// NewTelegram builds a notifier. An empty token disables delivery but keeps
// the Send calls cheap no-ops, so the engine does not need to special-case a
// missing configuration.
func NewTelegram(token, chatID string, log logger.Logger) *Telegram {
	apiURL := ""
	if token != "" {
		apiURL = fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", token)
	} else {
		log.Warn("telegram_disabled", logger.String("reason", "empty token"))
	}
	return &Telegram{
		apiURL: apiURL,
		chatID: chatID,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

func (t *Telegram) Send(text string) {
	if t.apiURL == "" {
		return
	}
	form := url.Values{}
	form.Set("chat_id", t.chatID)
	form.Set("text", text)
	form.Set("parse_mode", "Markdown")
	resp, err := t.client.PostForm(t.apiURL, form)
	if err != nil {
		t.log.Warn("telegram_send_failed", logger.Err(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.log.Warn("telegram_send_failed", logger.Int("status", resp.StatusCode))
	}
}
