package wa

import (
	"context"

	"github.com/matheus3301/wpnew/internal/bus"
)

// AuthEventType enumerates auth event types.
type AuthEventType string

const (
	AuthEventQRCode        AuthEventType = "qr_code"
	AuthEventAuthenticated AuthEventType = "authenticated"
	AuthEventAuthFailed    AuthEventType = "auth_failed"
	AuthEventTimeout       AuthEventType = "timeout"
)

// AuthEvent represents an auth lifecycle event.
type AuthEvent struct {
	Type    AuthEventType
	QRCode  string
	Message string
}

// Terminal reports whether no further events follow e.
func (e AuthEvent) Terminal() bool {
	return e.Type != AuthEventQRCode
}

// StartQRAuth begins the QR pairing flow. Every event is sent on the returned
// channel and published on b as session.auth. The channel closes after the
// first terminal event.
func (a *Adapter) StartQRAuth(ctx context.Context, b *bus.Bus) (<-chan AuthEvent, error) {
	qrChan, err := a.GetQRChannel(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan AuthEvent, 10)
	emit := func(evt AuthEvent) {
		out <- evt
		b.Publish(bus.NewEvent(bus.KindAuthEvent, evt))
	}

	go func() {
		defer close(out)

		// Connect must be called after GetQRChannel.
		if err := a.Connect(); err != nil {
			emit(AuthEvent{Type: AuthEventAuthFailed, Message: err.Error()})
			return
		}

		for item := range qrChan {
			evt, ok := authEventFromQR(item.Event, item.Code, item.Error)
			if !ok {
				continue
			}
			emit(evt)
			if evt.Terminal() {
				return
			}
		}
	}()

	return out, nil
}

func authEventFromQR(event, code string, err error) (AuthEvent, bool) {
	switch event {
	case "code":
		return AuthEvent{Type: AuthEventQRCode, QRCode: code}, true
	case "success":
		return AuthEvent{Type: AuthEventAuthenticated, Message: "authenticated"}, true
	case "timeout":
		return AuthEvent{Type: AuthEventTimeout, Message: "QR code timeout"}, true
	}
	if err != nil {
		return AuthEvent{Type: AuthEventAuthFailed, Message: err.Error()}, true
	}
	return AuthEvent{}, false
}
