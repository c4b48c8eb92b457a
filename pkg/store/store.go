// Package store persists mind maps together with their collapse state.
//
// A stored [Map] is the server-side counterpart of a [mindmap.Engine]: it
// keeps the raw input document, the layout options and the collapsed node
// ids, so a collapse toggled through the API survives across requests.
//
// Two backends are provided: [MemoryStore] for tests and single-process
// servers, and [MongoStore] for persistent deployments. Both serialize the
// input document to JSON on write, so callers never share mutable data with
// the store.
//
// [mindmap.Engine]: github.com/matzehuels/mindmap/pkg/mindmap.Engine
package store

import (
	"context"
	"slices"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout"
)

// Map is a persisted mind map.
type Map struct {
	ID        string         `json:"id"`
	Data      any            `json:"data"`
	Options   layout.Options `json:"options"`
	Collapsed []int          `json:"collapsed"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Store persists maps. Get, Update and Delete fail with NOT_FOUND for
// unknown ids.
type Store interface {
	// Create assigns a new id and timestamps to m and stores it.
	Create(ctx context.Context, m *Map) error
	Get(ctx context.Context, id string) (*Map, error)
	// Update replaces a stored map and refreshes UpdatedAt.
	Update(ctx context.Context, m *Map) error
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

// record is the serialized form shared by all backends.
type record struct {
	ID        string         `bson:"_id"`
	Data      string         `bson:"data"`
	Options   layout.Options `bson:"options"`
	Collapsed []int          `bson:"collapsed"`
	CreatedAt time.Time      `bson:"created_at"`
	UpdatedAt time.Time      `bson:"updated_at"`
}

func toRecord(m *Map) (*record, error) {
	data, err := json.Marshal(m.Data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "encode map data")
	}
	collapsed := slices.Clone(m.Collapsed)
	slices.Sort(collapsed)
	return &record{
		ID:        m.ID,
		Data:      string(data),
		Options:   m.Options,
		Collapsed: collapsed,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r *record) toMap() (*Map, error) {
	var data any
	if err := json.Unmarshal([]byte(r.Data), &data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode stored map %s", r.ID)
	}
	collapsed := r.Collapsed
	if collapsed == nil {
		collapsed = []int{}
	}
	return &Map{
		ID:        r.ID,
		Data:      data,
		Options:   r.Options,
		Collapsed: slices.Clone(collapsed),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func stamp(m *Map) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "map %s not found", id)
}
