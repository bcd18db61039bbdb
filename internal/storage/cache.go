package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
)

// keyPrefix namespaces perft records inside the database.
const keyPrefix = "perft/"

// Record is a stored perft result for one position and depth.
type Record struct {
	FEN    string           `json:"fen"`
	Depth  int              `json:"depth"`
	Nodes  int64            `json:"nodes"`
	Divide map[string]int64 `json:"divide,omitempty"`
}

// Options configures a Cache.
type Options struct {
	// Dir is the database directory. Empty means GetCacheDir().
	Dir string
	// InMemory keeps the database in memory only; Dir is ignored.
	InMemory bool
	Logger   zerolog.Logger
}

// Cache wraps BadgerDB for persistent perft results. Records are JSON
// compressed with zstd and keyed by position hash and depth.
// It is safe for concurrent use.
type Cache struct {
	db      *badger.DB
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	log     zerolog.Logger
}

// Open opens or creates a cache.
func Open(o Options) (*Cache, error) {
	dir := o.Dir
	if !o.InMemory && dir == "" {
		var err error
		if dir, err = GetCacheDir(); err != nil {
			return nil, fmt.Errorf("cache dir: %w", err)
		}
	}

	opts := badger.DefaultOptions(dir)
	if o.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, err
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		db.Close()
		return nil, err
	}

	o.Logger.Debug().Str("dir", dir).Bool("in_memory", o.InMemory).Msg("perft cache opened")
	return &Cache{db: db, encoder: encoder, decoder: decoder, log: o.Logger}, nil
}

// Close closes the database
func (c *Cache) Close() error {
	c.encoder.Close()
	c.decoder.Close()
	return c.db.Close()
}

// recordKey is the prefix, the big-endian hash and the big-endian depth.
func recordKey(hash uint64, depth int) []byte {
	key := make([]byte, len(keyPrefix)+12)
	copy(key, keyPrefix)
	binary.BigEndian.PutUint64(key[len(keyPrefix):], hash)
	binary.BigEndian.PutUint32(key[len(keyPrefix)+8:], uint32(depth))
	return key
}

// Get loads the record for a position hash and depth. The boolean is false
// when no record exists.
func (c *Cache) Get(hash uint64, depth int) (Record, bool, error) {
	var rec Record
	found := false

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(hash, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			data, err := c.decoder.DecodeAll(val, nil)
			if err != nil {
				return fmt.Errorf("decompress record: %w", err)
			}
			found = true
			return json.Unmarshal(data, &rec)
		})
	})
	if err != nil {
		return Record{}, false, err
	}

	c.log.Debug().Uint64("hash", hash).Int("depth", depth).Bool("hit", found).Msg("perft cache lookup")
	return rec, found, nil
}

// Put stores the record for a position hash, replacing any previous one.
func (c *Cache) Put(hash uint64, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	compressed := c.encoder.EncodeAll(data, nil)

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(hash, rec.Depth), compressed)
	})
}

// Len returns the number of stored records.
func (c *Cache) Len() (int, error) {
	n := 0
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
