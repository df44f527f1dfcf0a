package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// TelegramService pushes staff notifications to the admin chat.
type TelegramService struct {
	botToken    string
	adminChatID string
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to the specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}

	return nil
}

// NotifyRedemption tells the staff chat that a coupon was issued.
func (s *TelegramService) NotifyRedemption(phone, code, rewardType string) {
	text := fmt.Sprintf("🎟 <b>Novo resgate</b>\nCliente: %s\nCupom: <code>%s</code>\nTipo: %s",
		phone, code, rewardType)
	if err := s.SendMessage(s.adminChatID, text); err != nil {
		log.Printf("[Telegram] redemption notification failed: %v", err)
	}
}

// NotifyWheelWin alerts the staff that a physical prize was drawn so
// the waiter can confirm before handing anything over.
func (s *TelegramService) NotifyWheelWin(phone, prize string) {
	text := fmt.Sprintf("🎡 <b>Prêmio físico na roleta</b>\nCliente: %s\nPrêmio: %s", phone, prize)
	if err := s.SendMessage(s.adminChatID, text); err != nil {
		log.Printf("[Telegram] wheel notification failed: %v", err)
	}
}
