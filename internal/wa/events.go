package wa

import (
	"context"
	"time"

	"github.com/matheus3301/wpnew/internal/bus"
	"github.com/matheus3301/wpnew/internal/ingest"
	"github.com/matheus3301/wpnew/internal/status"
	"github.com/matheus3301/wpnew/internal/store"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"go.uber.org/zap"
)

// RosterSource is the session store view the handler reads. Contacts, groups
// and LID mappings are fetched after every connect; ResolveLID maps chats
// addressed by linked identity back to the phone number.
type RosterSource interface {
	GetContacts(ctx context.Context) ([]store.Contact, error)
	GetJoinedGroups(ctx context.Context) ([]*types.GroupInfo, error)
	GetLIDMappings(ctx context.Context) ([]store.LIDMapping, error)
	ResolveLID(ctx context.Context, jid types.JID) types.JID
}

// EventHandler processes whatsmeow events, drives the state machine and
// publishes roster events on the bus. It does not write to the store; the
// ingest engine subscribes to the bus independently.
type EventHandler struct {
	bus     *bus.Bus
	machine *status.Machine
	source  RosterSource
	logger  *zap.Logger
}

// NewEventHandler creates a new event handler. source may be nil.
func NewEventHandler(b *bus.Bus, machine *status.Machine, source RosterSource, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		bus:     b,
		machine: machine,
		source:  source,
		logger:  logger,
	}
}

// Handle is the main whatsmeow event handler function.
func (h *EventHandler) Handle(rawEvt any) {
	switch evt := rawEvt.(type) {
	case *events.Connected:
		h.logger.Info("WhatsApp connected")
		if h.machine.Current() != status.Ready {
			if err := h.machine.Walk(status.Connecting, status.Ready); err != nil {
				h.logger.Warn("unexpected state on connect", zap.Error(err))
			}
		}
		if h.source != nil {
			go h.syncRoster(context.Background())
		}
	case *events.Disconnected:
		h.logger.Warn("WhatsApp disconnected")
		_ = h.machine.Transition(status.Reconnecting)
	case *events.LoggedOut:
		h.logger.Warn("WhatsApp logged out", zap.String("reason", evt.Reason.String()))
		_ = h.machine.Transition(status.AuthRequired)
	case *events.Message:
		h.handleMessage(evt)
	case *events.Contact:
		h.bus.Publish(bus.NewEvent(bus.KindContact, &store.Contact{
			JID:  evt.JID.ToNonAD().String(),
			Name: evt.Action.GetFullName(),
		}))
	case *events.PushName:
		h.bus.Publish(bus.NewEvent(bus.KindContact, &store.Contact{
			JID:      evt.JID.ToNonAD().String(),
			PushName: evt.NewPushName,
		}))
	case *events.JoinedGroup:
		h.bus.Publish(bus.NewEvent(bus.KindGroupJoined, ingest.GroupJoined{
			JID:  evt.JID.String(),
			Name: evt.Name,
			At:   time.Now().UnixMilli(),
		}))
	case *events.HistorySync:
		h.handleHistorySync(evt)
	}
}

func (h *EventHandler) handleMessage(evt *events.Message) {
	chat := h.resolve(evt.Info.Chat.ToNonAD())
	kind, ok := chatKind(chat)
	if !ok {
		h.logger.Debug("ignoring message outside the roster", zap.Stringer("chat", chat))
		return
	}
	h.bus.Publish(bus.NewEvent(bus.KindActivity, ingest.Activity{
		ChatJID: chat.String(),
		Kind:    kind,
		At:      evt.Info.Timestamp.UnixMilli(),
	}))

	if !evt.Info.IsFromMe && evt.Info.PushName != "" {
		sender := h.resolve(evt.Info.Sender.ToNonAD())
		h.bus.Publish(bus.NewEvent(bus.KindContact, &store.Contact{
			JID:      sender.String(),
			PushName: evt.Info.PushName,
		}))
	}
}

// resolve maps a LID to its phone number when the session store knows it.
func (h *EventHandler) resolve(jid types.JID) types.JID {
	if h.source == nil {
		return jid
	}
	return h.source.ResolveLID(context.Background(), jid)
}

// chatKind classifies a chat for the roster. Broadcast lists, status updates
// and newsletters are not conversations and report false. An unmapped LID is
// kept as direct; it is folded into its phone number once the map arrives.
func chatKind(jid types.JID) (store.Kind, bool) {
	switch jid.Server {
	case types.DefaultUserServer, types.HiddenUserServer:
		return store.KindDirect, true
	case types.GroupServer:
		return store.KindGroup, true
	default:
		return "", false
	}
}

// handleHistorySync seeds the roster from the conversation list sent on the
// first link, so the New Message screen is not empty before any activity.
func (h *EventHandler) handleHistorySync(evt *events.HistorySync) {
	data := evt.Data
	if data == nil {
		return
	}

	var convs []ingest.Conversation
	for _, conv := range data.GetConversations() {
		jid, err := types.ParseJID(conv.GetID())
		if err != nil {
			continue
		}
		jid = h.resolve(jid.ToNonAD())
		kind, ok := chatKind(jid)
		if !ok {
			continue
		}
		convs = append(convs, ingest.Conversation{
			JID:    jid.String(),
			Kind:   kind,
			Name:   conv.GetName(),
			At:     int64(conv.GetConversationTimestamp()) * 1000,
			Unread: int(conv.GetUnreadCount()),
		})
	}

	if len(convs) > 0 {
		h.bus.Publish(bus.NewEvent(bus.KindHistoryBatch, convs))
	}
}

func (h *EventHandler) syncRoster(ctx context.Context) {
	contacts, err := h.source.GetContacts(ctx)
	if err != nil {
		h.logger.Warn("contact sync failed", zap.Error(err))
	} else {
		h.bus.Publish(bus.NewEvent(bus.KindContactsSynced, contacts))
	}

	mappings, err := h.source.GetLIDMappings(ctx)
	if err != nil {
		h.logger.Warn("lid map sync failed", zap.Error(err))
	} else if len(mappings) > 0 {
		h.bus.Publish(bus.NewEvent(bus.KindLIDMappings, mappings))
	}

	groups, err := h.source.GetJoinedGroups(ctx)
	if err != nil {
		h.logger.Warn("group sync failed", zap.Error(err))
		return
	}
	joined := make([]ingest.GroupJoined, 0, len(groups))
	for _, g := range groups {
		var at int64
		if !g.GroupCreated.IsZero() {
			at = g.GroupCreated.UnixMilli()
		}
		joined = append(joined, ingest.GroupJoined{JID: g.JID.String(), Name: g.Name, At: at})
	}
	if len(joined) > 0 {
		h.bus.Publish(bus.NewEvent(bus.KindGroupJoined, joined))
	}
}
