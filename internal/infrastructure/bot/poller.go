// Package bot receives Telegram updates over long polling. It is the
// second intake channel next to the HTTP API: when the mini-app sends
// its order through the host client, the payload arrives here as
// web_app_data on a regular message, attributed to the Telegram user.
package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/order"
)

const (
	defaultPollTimeout = 25 * time.Second
	errorBackoff       = 3 * time.Second

	thankYouText = "Спасибо за заказ! В скором времени с Вами свяжется менеджер и пришлет реквизиты для оплаты!"
	parseFailTxt = "Не удалось прочитать данные заказа."
	placeFailTxt = "Не удалось оформить заказ, попробуйте ещё раз."
)

// OrderIntake accepts a repriced order for a known Telegram user
type OrderIntake interface {
	PlaceForUser(ctx context.Context, userID int64, username string, payload order.Payload) (uuid.UUID, error)
}

// Poller runs the getUpdates long-poll loop and dispatches messages:
// /start answers with the open-store button, web_app_data goes through
// order intake and gets a confirmation reply.
type Poller struct {
	token       string
	apiBaseURL  string
	webAppURL   string
	storeTitle  string
	intake      OrderIntake
	httpClient  *http.Client
	logger      *zap.Logger
	pollTimeout time.Duration

	offset int64
}

// NewPoller creates a poller. It does nothing until Run is called.
func NewPoller(token, apiBaseURL, webAppURL, storeTitle string, intake OrderIntake, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		token:      token,
		apiBaseURL: strings.TrimRight(apiBaseURL, "/"),
		webAppURL:  webAppURL,
		storeTitle: storeTitle,
		intake:     intake,
		httpClient: &http.Client{
			// must outlast the long-poll hold time
			Timeout: defaultPollTimeout + 10*time.Second,
		},
		logger:      logger,
		pollTimeout: defaultPollTimeout,
	}
}

// Run polls until ctx is cancelled. Transport errors back off and
// retry; a malformed update never stops the loop.
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info("bot poller started")
	for {
		updates, err := p.getUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("bot poller stopped")
				return
			}
			p.logger.Warn("getUpdates failed", zap.Error(err))
			select {
			case <-ctx.Done():
				p.logger.Info("bot poller stopped")
				return
			case <-time.After(errorBackoff):
			}
			continue
		}
		for _, u := range updates {
			p.handleUpdate(ctx, u)
			if u.UpdateID >= p.offset {
				p.offset = u.UpdateID + 1
			}
		}
	}
}

func (p *Poller) handleUpdate(ctx context.Context, u update) {
	m := u.Message
	if m == nil {
		return
	}
	switch {
	case m.WebAppData != nil:
		p.handleOrder(ctx, m)
	case strings.HasPrefix(m.Text, "/start"):
		p.handleStart(ctx, m)
	}
}

// handleStart answers /start with the inline button that opens the
// mini-app storefront
func (p *Poller) handleStart(ctx context.Context, m *message) {
	title := strings.ToUpper(p.storeTitle)
	url := p.webAppURL
	if url == "" {
		url = "https://example.com"
	}
	reply := sendMessageRequest{
		ChatID: m.Chat.ID,
		Text:   fmt.Sprintf("%s — мини-магазин в Telegram. Открой витрину ниже:", title),
		ReplyMarkup: &replyMarkup{
			InlineKeyboard: [][]inlineButton{{
				{Text: "Открыть " + title, WebApp: &webAppInfo{URL: url}},
			}},
		},
	}
	if err := p.sendMessage(ctx, reply); err != nil {
		p.logger.Warn("start reply failed", zap.Int64("chat_id", m.Chat.ID), zap.Error(err))
	}
}

// handleOrder decodes the sendData payload and runs it through intake
// attributed to the sending user
func (p *Poller) handleOrder(ctx context.Context, m *message) {
	payload, ok := decodePayload([]byte(m.WebAppData.Data))
	if !ok {
		p.logger.Warn("unreadable web_app_data", zap.Int64("chat_id", m.Chat.ID))
		p.reply(ctx, m.Chat.ID, parseFailTxt)
		return
	}

	var userID int64
	var username string
	if m.From != nil {
		userID = m.From.ID
		username = m.From.Username
	}

	orderID, err := p.intake.PlaceForUser(ctx, userID, username, payload)
	if err != nil {
		p.logger.Error("web-app order intake failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		p.reply(ctx, m.Chat.ID, placeFailTxt)
		return
	}

	p.reply(ctx, m.Chat.ID, fmt.Sprintf("✅ Заказ №%s оформлен.\n\n%s", orderID, thankYouText))
}

// decodePayload maps the mini-app's JSON onto an order payload.
// Malformed product ids are dropped, the remaining lines stand.
func decodePayload(data []byte) (order.Payload, bool) {
	var wire struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
		Comment  string `json:"comment"`
		Telegram string `json:"telegram"`
		Items    []struct {
			ProductID string `json:"product_id"`
			Size      string `json:"size"`
			Quantity  int64  `json:"qty"`
		} `json:"items"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return order.Payload{}, false
	}

	payload := order.Payload{
		FullName: wire.FullName,
		Phone:    wire.Phone,
		Address:  wire.Address,
		Comment:  wire.Comment,
		Telegram: wire.Telegram,
	}
	for _, it := range wire.Items {
		id, err := uuid.Parse(it.ProductID)
		if err != nil {
			continue
		}
		payload.Items = append(payload.Items, order.PayloadItem{
			ProductID: id,
			Size:      it.Size,
			Quantity:  it.Quantity,
		})
	}
	return payload, true
}

func (p *Poller) reply(ctx context.Context, chatID int64, text string) {
	if err := p.sendMessage(ctx, sendMessageRequest{ChatID: chatID, Text: text}); err != nil {
		p.logger.Warn("bot reply failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (p *Poller) getUpdates(ctx context.Context) ([]update, error) {
	body, err := json.Marshal(getUpdatesRequest{
		Offset:  p.offset,
		Timeout: int(p.pollTimeout / time.Second),
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/bot%s/getUpdates", p.apiBaseURL, p.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("getUpdates status %d", resp.StatusCode)
	}

	var parsed getUpdatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode getUpdates: %w", err)
	}
	if !parsed.OK {
		return nil, fmt.Errorf("getUpdates not ok")
	}
	return parsed.Result, nil
}

func (p *Poller) sendMessage(ctx context.Context, msg sendMessageRequest) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", p.apiBaseURL, p.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sendMessage status %d", resp.StatusCode)
	}
	return nil
}
