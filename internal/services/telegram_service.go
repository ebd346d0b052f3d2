package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/example/fatales/internal/format"
)

const telegramAPI = "https://api.telegram.org"

// TelegramService sends notifications to the shop's Telegram chat.
type TelegramService struct {
	botToken    string
	adminChatID string
	apiBase     string
	httpClient  *http.Client
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
		apiBase:     telegramAPI,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether both the bot token and the admin chat are set.
func (s *TelegramService) Enabled() bool {
	return s.botToken != "" && s.adminChatID != ""
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends an HTML message to chatID.
func (s *TelegramService) SendMessage(ctx context.Context, chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.botToken)

	body, err := json.Marshal(telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Telegram] Unexpected status: %d", resp.StatusCode)
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(ctx context.Context, text string) error {
	if s.adminChatID == "" {
		log.Println("[Telegram] Admin chat ID not configured")
		return nil
	}
	return s.SendMessage(ctx, s.adminChatID, text)
}

// ConciergeNotification describes a callback request.
type ConciergeNotification struct {
	RequestID    string
	Name         string
	Phone        string
	Message      string
	Locale       string
	ProductName  string
	ProductPrice float64
}

// NotifyConcierge tells the advisors that a visitor asked to be called back.
func (s *TelegramService) NotifyConcierge(ctx context.Context, n ConciergeNotification) error {
	if !s.Enabled() {
		return nil
	}
	return s.SendToAdmin(ctx, ConciergeMessage(n))
}

// ConciergeMessage renders the notification text. Visitor input is escaped.
func ConciergeMessage(n ConciergeNotification) string {
	var b strings.Builder
	b.WriteString("<b>✨ NEW CONCIERGE REQUEST</b>\n")
	fmt.Fprintf(&b, "<b>👤 Name:</b> %s\n", html.EscapeString(n.Name))
	fmt.Fprintf(&b, "<b>📞 Phone:</b> %s\n", html.EscapeString(n.Phone))
	if n.Locale != "" {
		fmt.Fprintf(&b, "<b>🌐 Language:</b> %s\n", html.EscapeString(strings.ToUpper(n.Locale)))
	}
	if n.ProductName != "" {
		fmt.Fprintf(&b, "<b>🧴 Product:</b> %s (%s)\n", html.EscapeString(n.ProductName), format.Price(n.ProductPrice, "en"))
	}
	if msg := strings.TrimSpace(n.Message); msg != "" {
		fmt.Fprintf(&b, "<b>💬 Message:</b>\n%s\n", html.EscapeString(msg))
	}
	b.WriteString("━━━━━━━━━━━━━━━━━━\n")
	b.WriteString("<i>Fatales Parfums</i>")
	return b.String()
}
