package directory

import (
	"context"
	"slices"
	"strings"

	"github.com/matheus3301/wpnew/internal/store"
	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"
)

// DefaultLimit caps results when the caller asks for none.
const DefaultLimit = 50

// Source lists everything a search may match.
type Source interface {
	DirectoryCandidates(includeRooms bool) ([]store.Candidate, error)
}

// Result is a ranked match.
type Result struct {
	JID           string
	Kind          store.Kind
	DisplayName   string
	RoomUpdatedAt int64
	Score         int
}

// Directory answers search-as-you-type queries against the local contact
// book and conversation list.
type Directory struct {
	src    Source
	logger *zap.Logger
}

// New creates a Directory over src.
func New(src Source, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Directory{src: src, logger: logger.Named("directory")}
}

type candidates []store.Candidate

func (c candidates) String(i int) string {
	return c[i].DisplayName + " " + userPart(c[i].JID)
}

func (c candidates) Len() int { return len(c) }

// Search ranks candidates against text. Groups are only considered when
// includeRooms is set. Equal scores fall back to the most recent activity.
func (d *Directory) Search(ctx context.Context, text string, includeRooms bool, limit int) ([]Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	all, err := d.src.DirectoryCandidates(includeRooms)
	if err != nil {
		return nil, err
	}

	matches := fuzzy.FindFrom(text, candidates(all))
	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		c := all[m.Index]
		results = append(results, Result{
			JID:           c.JID,
			Kind:          c.Kind,
			DisplayName:   c.DisplayName,
			RoomUpdatedAt: c.RoomUpdatedAt,
			Score:         m.Score,
		})
	}
	slices.SortStableFunc(results, func(a, b Result) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		switch {
		case a.RoomUpdatedAt > b.RoomUpdatedAt:
			return -1
		case a.RoomUpdatedAt < b.RoomUpdatedAt:
			return 1
		}
		return 0
	})
	if len(results) > limit {
		results = results[:limit]
	}

	d.logger.Debug("search",
		zap.String("text", text),
		zap.Bool("include_rooms", includeRooms),
		zap.Int("candidates", len(all)),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// userPart strips the server from a JID ("5511999@s.whatsapp.net" → "5511999").
func userPart(jid string) string {
	if i := strings.IndexByte(jid, '@'); i >= 0 {
		return jid[:i]
	}
	return jid
}
