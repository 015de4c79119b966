package bot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/order"
)

type fakeIntake struct {
	mu       sync.Mutex
	userID   int64
	username string
	payload  order.Payload
	calls    int
	err      error
	orderID  uuid.UUID
}

func (f *fakeIntake) PlaceForUser(_ context.Context, userID int64, username string, payload order.Payload) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.userID = userID
	f.username = username
	f.payload = payload
	if f.err != nil {
		return uuid.Nil, f.err
	}
	return f.orderID, nil
}

// fakeBotAPI serves getUpdates once with the given updates, then empty
// batches, and records every sendMessage.
type fakeBotAPI struct {
	mu       sync.Mutex
	updates  []update
	served   bool
	offsets  []int64
	messages []sendMessageRequest
}

func (f *fakeBotAPI) handler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			var req getUpdatesRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			f.offsets = append(f.offsets, req.Offset)
			resp := getUpdatesResponse{OK: true}
			if !f.served {
				f.served = true
				resp.Result = f.updates
			}
			require.NoError(t, json.NewEncoder(w).Encode(resp))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var req sendMessageRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			f.messages = append(f.messages, req)
			_, _ = w.Write([]byte(`{"ok":true}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
}

func (f *fakeBotAPI) sentMessages() []sendMessageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sendMessageRequest(nil), f.messages...)
}

func (f *fakeBotAPI) seenOffsets() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.offsets...)
}

// runPoller drives the loop until the API has answered at least two
// getUpdates calls, so the post-batch offset is observable.
func runPoller(t *testing.T, api *fakeBotAPI, intake OrderIntake) {
	t.Helper()
	server := httptest.NewServer(api.handler(t))
	defer server.Close()

	p := NewPoller("secret-token", server.URL, "https://shop.example", "layoutplace", intake, zap.NewNop())
	p.pollTimeout = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	deadline := time.After(5 * time.Second)
	for len(api.seenOffsets()) < 2 {
		select {
		case <-deadline:
			t.Fatal("poller did not complete two polls in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done
}

func webAppUpdate(updateID int64, data string) update {
	return update{
		UpdateID: updateID,
		Message: &message{
			From:       &user{ID: 42, Username: "buyer"},
			Chat:       chat{ID: 42},
			WebAppData: &webAppData{Data: data},
		},
	}
}

func TestPollerPlacesWebAppOrder(t *testing.T) {
	productID := uuid.New()
	data := `{"full_name":"Иван","phone":"+79991234567","address":"Москва","items":[{"product_id":"` + productID.String() + `","size":"M","qty":2}]}`

	intake := &fakeIntake{orderID: uuid.New()}
	api := &fakeBotAPI{updates: []update{webAppUpdate(7, data)}}
	runPoller(t, api, intake)

	assert.Equal(t, 1, intake.calls)
	assert.Equal(t, int64(42), intake.userID)
	assert.Equal(t, "buyer", intake.username)
	require.Len(t, intake.payload.Items, 1)
	assert.Equal(t, productID, intake.payload.Items[0].ProductID)
	assert.Equal(t, "M", intake.payload.Items[0].Size)
	assert.EqualValues(t, 2, intake.payload.Items[0].Quantity)
	assert.Equal(t, "Иван", intake.payload.FullName)

	msgs := api.sentMessages()
	require.Len(t, msgs, 1)
	assert.Equal(t, int64(42), msgs[0].ChatID)
	assert.Contains(t, msgs[0].Text, "Заказ №"+intake.orderID.String())
	assert.Contains(t, msgs[0].Text, "Спасибо за заказ")

	offsets := api.seenOffsets()
	require.GreaterOrEqual(t, len(offsets), 2)
	assert.Equal(t, int64(0), offsets[0])
	assert.Equal(t, int64(8), offsets[1])
}

func TestPollerRepliesOnUnreadablePayload(t *testing.T) {
	intake := &fakeIntake{}
	api := &fakeBotAPI{updates: []update{webAppUpdate(1, "{not json")}}
	runPoller(t, api, intake)

	assert.Equal(t, 0, intake.calls)
	msgs := api.sentMessages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Не удалось прочитать")
}

func TestPollerRepliesOnIntakeFailure(t *testing.T) {
	data := `{"items":[{"product_id":"` + uuid.NewString() + `","qty":1}]}`
	intake := &fakeIntake{err: errors.New("db down")}
	api := &fakeBotAPI{updates: []update{webAppUpdate(1, data)}}
	runPoller(t, api, intake)

	assert.Equal(t, 1, intake.calls)
	msgs := api.sentMessages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Не удалось оформить")
}

func TestPollerAnswersStartWithWebAppButton(t *testing.T) {
	intake := &fakeIntake{}
	api := &fakeBotAPI{updates: []update{{
		UpdateID: 3,
		Message: &message{
			From: &user{ID: 42, Username: "buyer"},
			Chat: chat{ID: 42},
			Text: "/start",
		},
	}}}
	runPoller(t, api, intake)

	assert.Equal(t, 0, intake.calls)
	msgs := api.sentMessages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "LAYOUTPLACE")
	require.NotNil(t, msgs[0].ReplyMarkup)
	require.Len(t, msgs[0].ReplyMarkup.InlineKeyboard, 1)
	btn := msgs[0].ReplyMarkup.InlineKeyboard[0][0]
	assert.Equal(t, "Открыть LAYOUTPLACE", btn.Text)
	require.NotNil(t, btn.WebApp)
	assert.Equal(t, "https://shop.example", btn.WebApp.URL)
}

func TestDecodePayloadDropsMalformedIDs(t *testing.T) {
	good := uuid.New()
	payload, ok := decodePayload([]byte(`{"items":[{"product_id":"nope","qty":1},{"product_id":"` + good.String() + `","qty":3}]}`))
	require.True(t, ok)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, good, payload.Items[0].ProductID)
}
