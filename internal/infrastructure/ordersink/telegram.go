package ordersink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apporder "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/domain/order"
)

const notifyTimeout = 10 * time.Second

// TelegramNotifier sends new-order notifications to the admin chats
// through the Telegram Bot API.
type TelegramNotifier struct {
	token        string
	apiBaseURL   string
	adminChatIDs []int64
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewTelegramNotifier creates a notifier. With no token or no admin
// chats configured, NotifyOrder is a no-op.
func NewTelegramNotifier(token, apiBaseURL string, adminChatIDs []int64, logger *zap.Logger) *TelegramNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TelegramNotifier{
		token:        token,
		apiBaseURL:   strings.TrimRight(apiBaseURL, "/"),
		adminChatIDs: adminChatIDs,
		httpClient:   &http.Client{Timeout: notifyTimeout},
		logger:       logger,
	}
}

type sendMessageRequest struct {
	ChatID                int64  `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// NotifyOrder sends the order summary to every configured admin chat.
// One failed chat does not stop delivery to the others.
func (n *TelegramNotifier) NotifyOrder(ctx context.Context, o *order.Order) error {
	if n.token == "" || len(n.adminChatIDs) == 0 {
		return nil
	}

	text := formatOrderMessage(o)

	var lastErr error
	for _, chatID := range n.adminChatIDs {
		if err := n.sendMessage(ctx, chatID, text); err != nil {
			n.logger.Warn("admin notification delivery failed",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			lastErr = err
		}
	}
	return lastErr
}

func (n *TelegramNotifier) sendMessage(ctx context.Context, chatID int64, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBaseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("send message: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// formatOrderMessage renders the admin notification in the HTML style
// Telegram expects. Empty fields show as a dash so the layout stays stable.
func formatOrderMessage(o *order.Order) string {
	username := "—"
	buyerLink := "—"
	if o.Username != "" {
		username = "@" + html.EscapeString(o.Username)
	}
	if o.UserID != 0 {
		buyerLink = fmt.Sprintf("<a href='tg://user?id=%d'>профиль</a>", o.UserID)
	}

	var items strings.Builder
	for _, it := range o.Items {
		size := it.Size
		if size == "" {
			size = "—"
		}
		lineTotal := it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
		fmt.Fprintf(&items, "• %s [%s] × %d — %s ₽\n",
			html.EscapeString(it.Title), html.EscapeString(size), it.Quantity, lineTotal.String())
	}
	itemsText := strings.TrimRight(items.String(), "\n")
	if itemsText == "" {
		itemsText = "—"
	}

	return fmt.Sprintf(
		"<b>Новый заказ #%s</b>\n"+
			"Клиент: <b>%s</b> %s (%s)\n"+
			"Телефон: <b>%s</b>\n"+
			"СДЭК/адрес: <b>%s</b>\n"+
			"Telegram: <b>%s</b>\n"+
			"Комментарий: %s\n"+
			"Сумма: <b>%s ₽</b>\n\n%s",
		o.ID.String(),
		orDash(html.EscapeString(o.FullName)),
		username,
		buyerLink,
		orDash(html.EscapeString(o.Phone)),
		orDash(html.EscapeString(o.Address)),
		orDash(html.EscapeString(o.Telegram)),
		orDash(html.EscapeString(o.Comment)),
		o.TotalPrice.String(),
		itemsText,
	)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

// Ensure TelegramNotifier implements AdminNotifier
var _ apporder.AdminNotifier = (*TelegramNotifier)(nil)
