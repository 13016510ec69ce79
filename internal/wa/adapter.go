package wa

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matheus3301/wpnew/internal/session"
	"github.com/matheus3301/wpnew/internal/store"
	"go.mau.fi/whatsmeow"
	wastore "go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.uber.org/zap"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotLoggedIn is returned by calls that need a linked device.
var ErrNotLoggedIn = errors.New("not logged in")

// Adapter wraps the whatsmeow client and manages the WhatsApp connection.
type Adapter struct {
	client    *whatsmeow.Client
	container *sqlstore.Container
	logger    *zap.Logger
	session   string
}

// NewAdapter creates a new WhatsApp adapter for the given session.
func NewAdapter(ctx context.Context, sessionName string, logger *zap.Logger) (*Adapter, error) {
	// Device name shown on the phone's linked devices list.
	wastore.SetOSInfo("wpnew", [3]uint32{0, 1, 0})

	container, err := sqlstore.New(ctx, "sqlite3",
		fmt.Sprintf("file:%s?_foreign_keys=on", session.DeviceDBPath(sessionName)),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create device store: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("get device store: %w", err)
	}

	return &Adapter{
		client:    whatsmeow.NewClient(deviceStore, nil),
		container: container,
		logger:    logger.Named("wa"),
		session:   sessionName,
	}, nil
}

// IsLoggedIn returns whether the adapter has valid credentials.
func (a *Adapter) IsLoggedIn() bool {
	return a.client.Store.ID != nil
}

// Connect initiates the WhatsApp connection.
func (a *Adapter) Connect() error {
	a.logger.Info("connecting to WhatsApp")
	return a.client.Connect()
}

// Disconnect terminates the WhatsApp connection.
func (a *Adapter) Disconnect() {
	a.logger.Info("disconnecting from WhatsApp")
	a.client.Disconnect()
}

// RegisterEventHandler adds a handler for whatsmeow events.
func (a *Adapter) RegisterEventHandler(handler whatsmeow.EventHandler) {
	a.client.AddEventHandler(handler)
}

// PhoneNumber returns the linked phone number, or empty string.
func (a *Adapter) PhoneNumber() string {
	if a.client.Store.ID == nil {
		return ""
	}
	return a.client.Store.ID.User
}

// GetQRChannel returns the QR channel for pairing. Must be called before Connect.
func (a *Adapter) GetQRChannel(ctx context.Context) (<-chan whatsmeow.QRChannelItem, error) {
	if a.IsLoggedIn() {
		return nil, fmt.Errorf("already logged in")
	}
	ch, err := a.client.GetQRChannel(ctx)
	if err != nil {
		return nil, fmt.Errorf("get QR channel: %w", err)
	}
	return ch, nil
}

// GetContacts returns the address book kept in the device store.
func (a *Adapter) GetContacts(ctx context.Context) ([]store.Contact, error) {
	all, err := a.client.Store.Contacts.GetAllContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("get contacts: %w", err)
	}
	contacts := make([]store.Contact, 0, len(all))
	for jid, info := range all {
		contacts = append(contacts, store.Contact{
			JID:      jid.ToNonAD().String(),
			Name:     info.FullName,
			PushName: info.PushName,
		})
	}
	return contacts, nil
}

// GetJoinedGroups returns every group the account is a member of.
func (a *Adapter) GetJoinedGroups(ctx context.Context) ([]*types.GroupInfo, error) {
	if !a.IsLoggedIn() {
		return nil, ErrNotLoggedIn
	}
	groups, err := a.client.GetJoinedGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("get joined groups: %w", err)
	}
	return groups, nil
}

func (a *Adapter) hasLIDStore() bool {
	return a.client != nil && a.client.Store != nil && a.client.Store.LIDs != nil
}

// GetLIDMappings returns the LID of every address book contact the session
// store has one for. whatsmeow has no bulk lookup, so contacts are walked.
func (a *Adapter) GetLIDMappings(ctx context.Context) ([]store.LIDMapping, error) {
	if !a.hasLIDStore() {
		return nil, nil
	}
	all, err := a.client.Store.Contacts.GetAllContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("get contacts: %w", err)
	}

	var mappings []store.LIDMapping
	for jid := range all {
		pn := jid.ToNonAD()
		if pn.Server != types.DefaultUserServer {
			continue
		}
		lid, err := a.client.Store.LIDs.GetLIDForPN(ctx, pn)
		if err != nil || lid.IsEmpty() {
			continue
		}
		mappings = append(mappings, store.LIDMapping{LID: lid.User, PN: pn.User})
	}
	return mappings, nil
}

// ResolveLID returns the phone number JID behind a LID. Anything else, or a
// LID the session store cannot map, comes back unchanged.
func (a *Adapter) ResolveLID(ctx context.Context, jid types.JID) types.JID {
	if jid.Server != types.HiddenUserServer && jid.Server != types.HostedLIDServer {
		return jid
	}
	if !a.hasLIDStore() {
		return jid
	}
	pn, err := a.client.Store.LIDs.GetPNForLID(ctx, jid)
	if err != nil || pn.IsEmpty() {
		a.logger.Debug("lid not mapped", zap.Stringer("jid", jid), zap.Error(err))
		return jid
	}
	return pn
}

// CreateGroup creates a group with the given members and returns its JID.
func (a *Adapter) CreateGroup(ctx context.Context, name string, members []string) (string, error) {
	if !a.IsLoggedIn() {
		return "", ErrNotLoggedIn
	}
	participants, err := ParseJIDs(members)
	if err != nil {
		return "", err
	}
	info, err := a.client.CreateGroup(ctx, whatsmeow.ReqCreateGroup{
		Name:         name,
		Participants: participants,
	})
	if err != nil {
		return "", fmt.Errorf("create group: %w", err)
	}
	a.logger.Info("group created", zap.String("jid", info.JID.String()), zap.Int("members", len(participants)))
	return info.JID.String(), nil
}

// AddParticipants adds members to an existing group. Members the server
// refused are reported in the returned error.
func (a *Adapter) AddParticipants(ctx context.Context, group string, members []string) error {
	if !a.IsLoggedIn() {
		return ErrNotLoggedIn
	}
	groupJID, err := types.ParseJID(group)
	if err != nil {
		return fmt.Errorf("parse group JID: %w", err)
	}
	if groupJID.Server != types.GroupServer {
		return fmt.Errorf("%s is not a group", group)
	}
	participants, err := ParseJIDs(members)
	if err != nil {
		return err
	}

	result, err := a.client.UpdateGroupParticipants(ctx, groupJID, participants, whatsmeow.ParticipantChangeAdd)
	if err != nil {
		return fmt.Errorf("update participants: %w", err)
	}
	var refused []string
	for _, p := range result {
		if p.Error != 0 {
			refused = append(refused, fmt.Sprintf("%s (%d)", p.JID.User, p.Error))
		}
	}
	if len(refused) > 0 {
		return fmt.Errorf("participants refused: %s", strings.Join(refused, ", "))
	}
	return nil
}

// ParseJIDs parses full JIDs or bare phone numbers.
func ParseJIDs(raw []string) ([]types.JID, error) {
	if len(raw) == 0 {
		return nil, errors.New("no participants")
	}
	out := make([]types.JID, 0, len(raw))
	for _, r := range raw {
		jid, err := ParseJID(r)
		if err != nil {
			return nil, err
		}
		out = append(out, jid)
	}
	return out, nil
}

// ParseJID accepts "5511999999999@s.whatsapp.net", "+55 11 99999-9999" or
// "5511999999999".
func ParseJID(raw string) (types.JID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.JID{}, errors.New("empty JID")
	}
	if strings.ContainsRune(raw, '@') {
		jid, err := types.ParseJID(raw)
		if err != nil {
			return types.JID{}, fmt.Errorf("parse JID %q: %w", raw, err)
		}
		return jid.ToNonAD(), nil
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return types.JID{}, fmt.Errorf("parse JID %q: no digits", raw)
	}
	return types.NewJID(digits, types.DefaultUserServer), nil
}
