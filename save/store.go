package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"MinecraftGolang/blocks"
	"MinecraftGolang/logging"
	"MinecraftGolang/world"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Meta describes a save as a whole.
type Meta struct {
	ID      uuid.UUID `json:"id"`
	Seed    int64     `json:"seed"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Length  int       `json:"length"`
	Version int       `json:"version"`
	Created time.Time `json:"created"`
	Saved   time.Time `json:"saved"`
}

// Store writes worlds to and reads them from one backend.
type Store struct {
	backend Backend
	codec   *codec
	seed    int64
	logger  *zap.Logger
}

// New wraps backend. seed is recorded in the metadata of every save, unless
// backend already holds a save: its seed is kept so that chunks generated later
// match the saved ones.
func New(backend Backend, seed int64, logger *zap.Logger) (*Store, error) {
	logger = logging.OrNop(logger).Named("save")
	c, err := newCodec()
	if err != nil {
		return nil, err
	}
	s := &Store{backend: backend, codec: c, seed: seed, logger: logger}

	meta, err := s.Meta()
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		c.close()
		return nil, err
	case meta.Seed != seed:
		logger.Warn("using the seed of the existing save", zap.Int64("saved", meta.Seed), zap.Int64("configured", seed))
		s.seed = meta.Seed
	}
	return s, nil
}

// Seed is the world seed this store saves under.
func (s *Store) Seed() int64 { return s.seed }

// Meta reads the metadata of the current save, or ErrNotFound if nothing has
// been saved yet.
func (s *Store) Meta() (Meta, error) {
	var m Meta
	raw, err := s.backend.Get(metaKey)
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return m, fmt.Errorf("decode meta: %w", err)
	}
	return m, nil
}

// Save writes every chunk of w and the metadata in one batch. On error the
// previous save is left as it was.
func (s *Store) Save(w *world.World) error {
	start := time.Now()

	meta, err := s.Meta()
	switch {
	case errors.Is(err, ErrNotFound):
		meta = Meta{ID: uuid.New(), Created: start}
	case err != nil:
		return fmt.Errorf("save: %w", err)
	}
	meta.Seed = s.seed
	meta.Width, meta.Height, meta.Length = world.Width, world.Height, world.Length
	meta.Version = formatVersion
	meta.Saved = start

	entries := make(map[string][]byte, w.Len()+1)
	for pos, c := range w.Chunks() {
		entries[chunkKey(pos)] = s.codec.encode(c.Blocks())
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("save: encode meta: %w", err)
	}
	entries[metaKey] = raw

	if err := s.backend.WriteBatch(entries); err != nil {
		return fmt.Errorf("save: write: %w", err)
	}
	s.logger.Info("saved world",
		zap.Stringer("id", meta.ID),
		zap.Int("chunks", len(entries)-1),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// Load replaces the chunks of w with the saved ones. Everything is decoded
// and checked before w is touched, so a failed load leaves w unchanged.
func (s *Store) Load(w *world.World) error {
	meta, err := s.Meta()
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if meta.Width != world.Width || meta.Height != world.Height || meta.Length != world.Length {
		return fmt.Errorf("load: %w: saved %dx%dx%d", ErrDimensionMismatch, meta.Width, meta.Height, meta.Length)
	}

	staged := make(map[world.ChunkPos][]blocks.ID)
	err = s.backend.Iterate(chunkPrefix, func(key string, value []byte) error {
		pos, err := parseChunkKey(key)
		if err != nil {
			return err
		}
		ids, err := s.codec.decode(value)
		if err != nil {
			return fmt.Errorf("%v: %w", pos, err)
		}
		staged[pos] = ids
		return nil
	})
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	if err := w.Install(staged); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	s.logger.Info("loaded world", zap.Stringer("id", meta.ID), zap.Int("chunks", len(staged)))
	return nil
}

func (s *Store) Close() error {
	s.codec.close()
	return s.backend.Close()
}
