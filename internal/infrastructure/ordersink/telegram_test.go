package ordersink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/order"
)

func sampleOrder(t *testing.T) *order.Order {
	t.Helper()
	form := order.CheckoutForm{
		FullName: "Иван Иванов",
		Phone:    "+79991234567",
		Address:  "Москва, ул. Ленина 1",
	}
	items := []order.Item{
		{ProductID: uuid.New(), Title: "Hoodie", Size: "M", Quantity: 2, UnitPrice: decimal.NewFromInt(4990)},
		{ProductID: uuid.New(), Title: "Tee", Quantity: 1, UnitPrice: decimal.NewFromInt(1990)},
	}
	o, err := order.New(42, "buyer", form, items)
	require.NoError(t, err)
	return o
}

func TestTelegramNotifier_NotifyOrder(t *testing.T) {
	var mu sync.Mutex
	var requests []sendMessageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/sendMessage"))
		assert.Contains(t, r.URL.Path, "/botsecret-token/")
		var req sendMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		mu.Lock()
		requests = append(requests, req)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier("secret-token", server.URL, []int64{100, 200}, zap.NewNop())
	err := n.NotifyOrder(context.Background(), sampleOrder(t))

	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, int64(100), requests[0].ChatID)
	assert.Equal(t, int64(200), requests[1].ChatID)
	assert.Equal(t, "HTML", requests[0].ParseMode)
	assert.True(t, requests[0].DisableWebPagePreview)

	text := requests[0].Text
	assert.Contains(t, text, "Новый заказ")
	assert.Contains(t, text, "Иван Иванов")
	assert.Contains(t, text, "@buyer")
	assert.Contains(t, text, "tg://user?id=42")
	assert.Contains(t, text, "• Hoodie [M] × 2 — 9980 ₽")
	assert.Contains(t, text, "• Tee [—] × 1 — 1990 ₽")
	assert.Contains(t, text, "11970 ₽")
}

func TestTelegramNotifier_NoTokenIsNoop(t *testing.T) {
	n := NewTelegramNotifier("", "https://api.telegram.org", []int64{100}, zap.NewNop())
	assert.NoError(t, n.NotifyOrder(context.Background(), sampleOrder(t)))
}

func TestTelegramNotifier_OneFailedChatDoesNotStopOthers(t *testing.T) {
	var mu sync.Mutex
	var delivered []int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.ChatID == 100 {
			w.WriteHeader(http.StatusForbidden) // bot blocked by this admin
			return
		}
		mu.Lock()
		delivered = append(delivered, req.ChatID)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	n := NewTelegramNotifier("secret-token", server.URL, []int64{100, 200}, zap.NewNop())
	err := n.NotifyOrder(context.Background(), sampleOrder(t))

	assert.Error(t, err)
	assert.Equal(t, []int64{200}, delivered)
}

func TestFormatOrderMessage_EscapesHTML(t *testing.T) {
	o := sampleOrder(t)
	o.FullName = "<script>alert(1)</script>"

	text := formatOrderMessage(o)
	assert.NotContains(t, text, "<script>")
	assert.Contains(t, text, "&lt;script&gt;")
}
