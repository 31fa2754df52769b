// Package push delivers Web Push notifications to subscribed browsers.
package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"kovan/models"
	"kovan/store"
)

const Collection = "push_subscriptions"

type Pusher interface {
	Notify(ctx context.Context, userID, title, body, url string) error
}

type sendFunc func(payload []byte, sub *webpush.Subscription, opts *webpush.Options) (*http.Response, error)

// WebPush stores one subscription per user and sends VAPID signed
// notifications to it.
type WebPush struct {
	subs       *store.Collection
	publicKey  string
	privateKey string
	subscriber string
	send       sendFunc
}

func New(st store.Store, publicKey, privateKey, subscriber string) *WebPush {
	return &WebPush{
		subs:       store.NewCollection(st, Collection),
		publicKey:  publicKey,
		privateKey: privateKey,
		subscriber: subscriber,
		send:       webpush.SendNotification,
	}
}

// Enabled reports whether VAPID keys are configured.
func (w *WebPush) Enabled() bool {
	return w.publicKey != "" && w.privateKey != ""
}

func (w *WebPush) PublicKey() string {
	return w.publicKey
}

// Subscribe saves (or replaces) the subscription of userID.
func (w *WebPush) Subscribe(ctx context.Context, userID string, sub models.PushSubscription) error {
	sub.ID = ""
	sub.UserID = userID
	if sub.Endpoint == "" || sub.Keys.P256dh == "" || sub.Keys.Auth == "" {
		return errors.New("endpoint and keys are required")
	}
	_, err := w.subs.Set(ctx, userID, sub)
	return err
}

// Notify sends one notification to userID. Users without a subscription
// are skipped; an expired subscription (410 Gone) is deleted.
func (w *WebPush) Notify(ctx context.Context, userID, title, body, url string) error {
	if !w.Enabled() {
		return nil
	}
	var sub models.PushSubscription
	if err := w.subs.Get(ctx, userID, &sub); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	if r := []rune(body); len(r) > 100 {
		body = string(r[:100]) + "..."
	}
	payload, err := json.Marshal(map[string]interface{}{
		"title": title,
		"body":  body,
		"data": map[string]interface{}{
			"url":       url,
			"timestamp": time.Now().Unix(),
		},
	})
	if err != nil {
		return err
	}

	resp, err := w.send(payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys:     webpush.Keys{P256dh: sub.Keys.P256dh, Auth: sub.Keys.Auth},
	}, &webpush.Options{
		Subscriber:      w.subscriber,
		VAPIDPublicKey:  w.publicKey,
		VAPIDPrivateKey: w.privateKey,
		TTL:             30,
	})
	if resp != nil {
		defer resp.Body.Close()
	}
	if resp != nil && resp.StatusCode == http.StatusGone {
		log.Printf("[push] subscription expired for user %s, deleting", userID)
		if delErr := w.subs.Remove(ctx, userID); delErr != nil {
			log.Printf("[push] failed to delete expired subscription: %v", delErr)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("send push to %s: %w", userID, err)
	}
	return nil
}

// GenerateKeys returns a fresh VAPID key pair.
func GenerateKeys() (privateKey, publicKey string, err error) {
	return webpush.GenerateVAPIDKeys()
}

// Nop sends nothing.
type Nop struct{}

func (Nop) Notify(context.Context, string, string, string, string) error { return nil }
