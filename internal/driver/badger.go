package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/agenthands/travelmate/internal/core/model"
	"github.com/agenthands/travelmate/internal/logger"
)

const (
	nodeKeyPrefix = "node:"
	edgeKeyPrefix = "edge:"
	keySeparator  = "\x00"

	maxConflictRetries = 3
)

// BadgerStore keeps the graph in an embedded badger database. Nodes live
// under "node:<key>" and edges under "edge:<src>\x00<dst>", so the
// successors of a node are one prefix scan.
type BadgerStore struct {
	db  *badger.DB
	log *logger.Logger
}

// NewBadgerStore opens (or creates) a database at path. An empty path opens
// an in-memory database.
func NewBadgerStore(path string, log *logger.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	log.Info("Opened badger graph store", "path", path)
	return &BadgerStore{db: db, log: log}, nil
}

func nodeKey(key string) []byte {
	return []byte(nodeKeyPrefix + key)
}

func edgeKey(src, dst string) []byte {
	return []byte(edgeKeyPrefix + src + keySeparator + dst)
}

func edgePrefix(src string) []byte {
	return []byte(edgeKeyPrefix + src + keySeparator)
}

func (s *BadgerStore) HasNode(_ context.Context, key string) (bool, error) {
	return s.exists(nodeKey(key))
}

func (s *BadgerStore) GetNode(_ context.Context, key string) (model.Entity, error) {
	var node model.Entity
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, nodeKey(key), &node, model.ErrNodeNotFound)
	})
	return node, err
}

func (s *BadgerStore) AddNode(_ context.Context, node model.Entity) (bool, error) {
	data, err := json.Marshal(node)
	if err != nil {
		return false, fmt.Errorf("marshal node: %w", err)
	}
	return s.createIfAbsent(nodeKey(node.Key), data, nil)
}

func (s *BadgerStore) HasEdge(_ context.Context, src, dst string) (bool, error) {
	return s.exists(edgeKey(src, dst))
}

func (s *BadgerStore) GetEdge(_ context.Context, src, dst string) (model.Relationship, error) {
	var edge model.Relationship
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, edgeKey(src, dst), &edge, model.ErrEdgeNotFound)
	})
	return edge, err
}

// AddEdge creates the edge if both endpoints exist and the pair is free.
func (s *BadgerStore) AddEdge(_ context.Context, edge model.Relationship) (bool, error) {
	data, err := json.Marshal(edge)
	if err != nil {
		return false, fmt.Errorf("marshal edge: %w", err)
	}
	return s.createIfAbsent(edgeKey(edge.SourceKey, edge.TargetKey), data, func(txn *badger.Txn) error {
		for _, k := range []string{edge.SourceKey, edge.TargetKey} {
			if _, err := txn.Get(nodeKey(k)); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return model.ErrNodeNotFound
				}
				return err
			}
		}
		return nil
	})
}

func (s *BadgerStore) ShortestPath(_ context.Context, src, dst string) ([]string, error) {
	var path []string
	err := s.db.View(func(txn *badger.Txn) error {
		for _, k := range []string{src, dst} {
			if err := mustExist(txn, nodeKey(k)); err != nil {
				return err
			}
		}
		var err error
		path, err = bfsPath(src, dst, successorsIn(txn))
		return err
	})
	return path, err
}

func (s *BadgerStore) ReachableWithin(_ context.Context, src string, hops int) ([]string, error) {
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		if err := mustExist(txn, nodeKey(src)); err != nil {
			return err
		}
		var err error
		keys, err = bfsWithin(src, hops, successorsIn(txn))
		return err
	})
	return keys, err
}

func (s *BadgerStore) Stats(_ context.Context) (Stats, error) {
	var st Stats
	err := s.db.View(func(txn *badger.Txn) error {
		st.Nodes = countPrefix(txn, []byte(nodeKeyPrefix))
		st.Edges = countPrefix(txn, []byte(edgeKeyPrefix))
		return nil
	})
	return st, err
}

func (s *BadgerStore) Close(_ context.Context) error {
	return s.db.Close()
}

func (s *BadgerStore) exists(key []byte) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// createIfAbsent writes value under key unless the key exists. Transaction
// conflicts with a concurrent writer are retried; the loser then sees the
// key and reports false.
func (s *BadgerStore) createIfAbsent(key, value []byte, check func(txn *badger.Txn) error) (bool, error) {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		created := false
		err = s.db.Update(func(txn *badger.Txn) error {
			_, getErr := txn.Get(key)
			if getErr == nil {
				return nil
			}
			if !errors.Is(getErr, badger.ErrKeyNotFound) {
				return getErr
			}
			if check != nil {
				if err := check(txn); err != nil {
					return err
				}
			}
			created = true
			return txn.Set(key, value)
		})
		if !errors.Is(err, badger.ErrConflict) {
			return created && err == nil, err
		}
		s.log.Debug("Retrying conflicting badger write", "key", string(key), "attempt", attempt+1)
	}
	return false, err
}

func getJSON(txn *badger.Txn, key []byte, out any, notFound error) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return notFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

func mustExist(txn *badger.Txn, key []byte) error {
	_, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return model.ErrNodeNotFound
	}
	return err
}

func successorsIn(txn *badger.Txn) neighborFunc {
	return func(key string) ([]string, error) {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := edgePrefix(key)
		var out []string
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			k := it.Item().Key()
			out = append(out, string(bytes.TrimPrefix(k, prefix)))
		}
		return out, nil
	}
}

func countPrefix(txn *badger.Txn, prefix []byte) int {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	n := 0
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		n++
	}
	return n
}
