package ingest

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/matheus3301/wpnew/internal/bus"
	"github.com/matheus3301/wpnew/internal/store"
	"go.uber.org/zap"
)

// Engine keeps the roster tables in step with the WhatsApp connection.
// It subscribes to "wa.*" events on the bus and publishes roster.changed
// after every write.
type Engine struct {
	db     *store.DB
	bus    *bus.Bus
	logger *zap.Logger
	cancel context.CancelFunc
}

// NewEngine creates a new ingest engine.
func NewEngine(db *store.DB, b *bus.Bus, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		db:     db,
		bus:    b,
		logger: logger.Named("ingest"),
	}
}

// Start subscribes to inbound WhatsApp events on the bus.
func (e *Engine) Start(ctx context.Context) {
	ctx, e.cancel = context.WithCancel(ctx)
	ch, unsub := e.bus.Subscribe("wa.", 256)

	go func() {
		defer unsub()
		for {
			select {
			case evt := <-ch:
				e.handleEvent(evt)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the engine.
func (e *Engine) Stop() {
	if e.cancel != nil {
		e.cancel()
	}
}

func (e *Engine) handleEvent(evt bus.Event) {
	var err error
	switch p := evt.Payload.(type) {
	case Activity:
		err = e.IngestActivity(p)
	case GroupJoined:
		err = e.IngestGroup(p)
	case []GroupJoined:
		err = e.IngestGroups(p)
	case []Conversation:
		err = e.IngestConversations(p)
	case *store.Contact:
		err = e.IngestContact(p)
	case []store.Contact:
		err = e.IngestContacts(p)
	case []store.LIDMapping:
		err = e.IngestLIDMappings(p)
	default:
		e.logger.Debug("ignoring event", zap.String("kind", evt.Kind))
		return
	}
	if err != nil {
		e.logger.Error("failed to ingest event", zap.String("kind", evt.Kind), zap.Error(err))
	}
}

// IngestActivity moves a chat to the top of the roster.
func (e *Engine) IngestActivity(a Activity) error {
	kind := a.Kind
	if kind == "" {
		kind = store.KindDirect
	}
	jid := a.ChatJID
	pn, ok, err := e.db.LookupPN(jid)
	if err != nil {
		return fmt.Errorf("lookup lid %q: %w", jid, err)
	}
	if ok {
		jid = pn
	}
	if err := e.db.TouchSubscription(jid, kind, a.At); err != nil {
		return fmt.Errorf("touch subscription: %w", err)
	}
	e.publish(ReasonActivity, jid)
	return nil
}

// IngestGroup records a group the account was added to or created.
func (e *Engine) IngestGroup(g GroupJoined) error {
	return e.IngestGroups([]GroupJoined{g})
}

// IngestGroups records the joined group list fetched after connecting.
func (e *Engine) IngestGroups(groups []GroupJoined) error {
	now := time.Now().UnixMilli()
	subs := make([]store.Subscription, 0, len(groups))
	jids := make([]string, 0, len(groups))
	for _, g := range groups {
		at := g.At
		if at == 0 {
			at = now
		}
		subs = append(subs, store.Subscription{JID: g.JID, Kind: store.KindGroup, Name: g.Name, RoomUpdatedAt: at})
		jids = append(jids, g.JID)
	}
	if err := e.db.BulkUpsertSubscriptions(subs); err != nil {
		return fmt.Errorf("upsert groups: %w", err)
	}
	e.publish(ReasonGroup, jids...)
	return nil
}

// IngestConversations seeds the roster from a history sync batch.
func (e *Engine) IngestConversations(convs []Conversation) error {
	subs := make([]store.Subscription, 0, len(convs))
	for _, c := range convs {
		subs = append(subs, store.Subscription{
			JID:           c.JID,
			Kind:          c.Kind,
			Name:          c.Name,
			RoomUpdatedAt: c.At,
			UnreadCount:   c.Unread,
		})
	}
	if err := e.db.BulkUpsertSubscriptions(subs); err != nil {
		return fmt.Errorf("upsert conversations: %w", err)
	}
	e.logger.Info("history batch ingested", zap.Int("conversations", len(convs)))
	e.publish(ReasonHistory)
	return nil
}

// IngestContact stores a single contact or push name update.
func (e *Engine) IngestContact(c *store.Contact) error {
	if err := e.db.UpsertContact(c); err != nil {
		return fmt.Errorf("upsert contact: %w", err)
	}
	e.publish(ReasonContact, c.JID)
	return nil
}

// IngestContacts stores a full address book sync and records the checkpoint.
func (e *Engine) IngestContacts(contacts []store.Contact) error {
	if err := e.db.BulkUpsertContacts(contacts); err != nil {
		return fmt.Errorf("bulk upsert contacts: %w", err)
	}
	now := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if err := e.db.SetCheckpoint(store.CheckpointContactsSyncedAt, now); err != nil {
		return fmt.Errorf("set checkpoint: %w", err)
	}
	e.logger.Info("contacts synced", zap.Int("count", len(contacts)))
	e.publish(ReasonContacts)
	return nil
}

// IngestLIDMappings stores the LID map from the session store and folds
// conversations recorded under a LID into their phone number.
func (e *Engine) IngestLIDMappings(mappings []store.LIDMapping) error {
	if err := e.db.SyncLIDMap(mappings); err != nil {
		return fmt.Errorf("sync lid map: %w", err)
	}
	merged, err := e.db.ReconcileLIDs()
	if err != nil {
		return fmt.Errorf("reconcile lids: %w", err)
	}
	e.logger.Info("lid map synced", zap.Int("mappings", len(mappings)), zap.Int64("merged", merged))
	if merged > 0 {
		e.publish(ReasonLIDs)
	}
	return nil
}

func (e *Engine) publish(reason string, jids ...string) {
	e.bus.Publish(bus.NewEvent(bus.KindRosterChanged, RosterChange{JIDs: jids, Reason: reason}))
}
