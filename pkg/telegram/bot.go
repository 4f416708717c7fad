package telegram

import (
	"fmt"
	"net/http"
	"net/url"
)

// Bot отправляет служебные уведомления в фиксированный чат персонала
type Bot struct {
	token   string
	chatID  string
	baseURL string
}

func NewBot(token, chatID string) *Bot {
	return &Bot{
		token:   token,
		chatID:  chatID,
		baseURL: "https://api.telegram.org/bot" + token,
	}
}

func (b *Bot) SendMessage(chatID, text string) error {
	endpoint := b.baseURL + "/sendMessage"

	params := url.Values{}
	params.Add("chat_id", chatID)
	params.Add("text", text)

	resp, err := http.PostForm(endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error: %s", resp.Status)
	}

	return nil
}

// NotifyStaff отправляет сообщение в чат персонала, заданный конфигурацией
func (b *Bot) NotifyStaff(text string) error {
	if b.chatID == "" {
		return fmt.Errorf("staff chat is not configured")
	}
	return b.SendMessage(b.chatID, text)
}
