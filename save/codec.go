package save

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"MinecraftGolang/blocks"
	"MinecraftGolang/world"

	"github.com/klauspost/compress/zstd"
)

var (
	ErrCorruptChunk      = errors.New("corrupt chunk record")
	ErrDimensionMismatch = errors.New("chunk dimensions do not match")
)

const (
	chunkPrefix = "chunk/"
	metaKey     = "meta"

	formatVersion = 1
	headerSize    = 12
)

var magic = []byte("OCCK")

// chunkKey sorts chunks by x, then y, then z.
func chunkKey(pos world.ChunkPos) string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[0:], uint32(int32(pos.X)))
	binary.BigEndian.PutUint32(b[4:], uint32(int32(pos.Y)))
	binary.BigEndian.PutUint32(b[8:], uint32(int32(pos.Z)))
	return chunkPrefix + string(b[:])
}

func parseChunkKey(key string) (world.ChunkPos, error) {
	raw, ok := strings.CutPrefix(key, chunkPrefix)
	if !ok || len(raw) != 12 {
		return world.ChunkPos{}, fmt.Errorf("%w: bad key %q", ErrCorruptChunk, key)
	}
	b := []byte(raw)
	return world.ChunkPos{
		X: int(int32(binary.BigEndian.Uint32(b[0:]))),
		Y: int(int32(binary.BigEndian.Uint32(b[4:]))),
		Z: int(int32(binary.BigEndian.Uint32(b[8:]))),
	}, nil
}

// codec packs block arrays as a small header followed by zstd data. It is
// not safe for concurrent use.
type codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newCodec() (*codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &codec{enc: enc, dec: dec}, nil
}

func (c *codec) close() {
	c.enc.Close()
	c.dec.Close()
}

func header() []byte {
	out := make([]byte, headerSize, headerSize+world.Volume/16)
	copy(out, magic)
	binary.LittleEndian.PutUint16(out[4:], formatVersion)
	binary.LittleEndian.PutUint16(out[6:], world.Width)
	binary.LittleEndian.PutUint16(out[8:], world.Height)
	binary.LittleEndian.PutUint16(out[10:], world.Length)
	return out
}

func (c *codec) encode(ids []blocks.ID) []byte {
	raw := make([]byte, len(ids))
	for i, id := range ids {
		raw[i] = byte(id)
	}
	return c.enc.EncodeAll(raw, header())
}

func (c *codec) decode(data []byte) ([]blocks.ID, error) {
	if len(data) < headerSize || !bytes.Equal(data[:4], magic) {
		return nil, fmt.Errorf("%w: bad header", ErrCorruptChunk)
	}
	if v := binary.LittleEndian.Uint16(data[4:]); v != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptChunk, v)
	}
	w := binary.LittleEndian.Uint16(data[6:])
	h := binary.LittleEndian.Uint16(data[8:])
	l := binary.LittleEndian.Uint16(data[10:])
	if w != world.Width || h != world.Height || l != world.Length {
		return nil, fmt.Errorf("%w: saved %dx%dx%d, want %dx%dx%d",
			ErrDimensionMismatch, w, h, l, world.Width, world.Height, world.Length)
	}

	raw, err := c.dec.DecodeAll(data[headerSize:], make([]byte, 0, world.Volume))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptChunk, err)
	}
	if len(raw) != world.Volume {
		return nil, fmt.Errorf("%w: %d blocks, want %d", ErrCorruptChunk, len(raw), world.Volume)
	}
	ids := make([]blocks.ID, len(raw))
	for i, b := range raw {
		ids[i] = blocks.ID(b)
	}
	return ids, nil
}
