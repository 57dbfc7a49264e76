package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/travelmate/internal/core/model"
	"github.com/agenthands/travelmate/internal/logger"
)

// QueryExecutor runs a single Cypher statement and returns its records.
type QueryExecutor interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error)
	Close(ctx context.Context) error
}

// BoltDriver is a QueryExecutor over a Neo4j or Memgraph server.
type BoltDriver struct {
	Driver   neo4j.DriverWithContext
	Database string
}

// BoltOptions configures NewBoltDriver.
type BoltOptions struct {
	URI         string
	User        string
	Password    string
	Database    string
	MaxPoolSize int
	Timeout     time.Duration
}

func NewBoltDriver(opts BoltOptions, log *logger.Logger) (*BoltDriver, error) {
	auth := neo4j.BasicAuth(opts.User, opts.Password, "")
	driver, err := neo4j.NewDriverWithContext(opts.URI, auth, func(cfg *neo4j.Config) {
		if opts.MaxPoolSize > 0 {
			cfg.MaxConnectionPoolSize = opts.MaxPoolSize
		}
		if opts.Timeout > 0 {
			cfg.SocketConnectTimeout = opts.Timeout
		}
	})
	if err != nil {
		return nil, fmt.Errorf("init bolt driver: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify bolt connectivity: %w", err)
	}

	log.Info("Connected to graph database", "uri", opts.URI, "database", opts.Database)
	return &BoltDriver{Driver: driver, Database: opts.Database}, nil
}

func (d *BoltDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *BoltDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	var cfg []neo4j.ExecuteQueryConfigurationOption
	if d.Database != "" {
		cfg = append(cfg, neo4j.ExecuteQueryWithDatabase(d.Database))
	}
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer, cfg...)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

// BoltStore is a GraphStore backed by Cypher statements. Entities are
// :Entity nodes keyed by `key`; relationships are :RELATES_TO edges with the
// free-text label in the `relation` property.
type BoltStore struct {
	exec    QueryExecutor
	dialect Dialect
	log     *logger.Logger
	tokens  func() string
}

func NewBoltStore(exec QueryExecutor, dialect Dialect, log *logger.Logger) *BoltStore {
	if dialect == "" {
		dialect = DialectNeo4j
	}
	return &BoltStore{
		exec:    exec,
		dialect: dialect,
		log:     log.With("store", "bolt", "dialect", string(dialect)),
		tokens:  func() string { return uuid.New().String() },
	}
}

// BuildIndices creates the key index/constraint. Failures are logged and
// ignored, as the index usually exists already.
func (s *BoltStore) BuildIndices(ctx context.Context) error {
	for _, q := range s.dialect.indexQueries() {
		if _, err := s.exec.ExecuteQuery(ctx, q, nil); err != nil {
			s.log.Warn("Failed to create index", "query", q, "error", err)
		}
	}
	return nil
}

func (s *BoltStore) HasNode(ctx context.Context, key string) (bool, error) {
	n, err := s.count(ctx, HasEntityQuery, map[string]interface{}{"key": key})
	return n > 0, err
}

func (s *BoltStore) GetNode(ctx context.Context, key string) (model.Entity, error) {
	res, err := s.exec.ExecuteQuery(ctx, GetEntityQuery, map[string]interface{}{"key": key})
	if err != nil {
		return model.Entity{}, err
	}
	if len(res.Records) == 0 {
		return model.Entity{}, model.ErrNodeNotFound
	}
	rec := res.Records[0]
	return model.Entity{
		Key:  stringValue(rec, "key"),
		Name: stringValue(rec, "name"),
		Type: stringValue(rec, "type"),
	}, nil
}

func (s *BoltStore) AddNode(ctx context.Context, node model.Entity) (bool, error) {
	return s.create(ctx, SaveEntityQuery, map[string]interface{}{
		"key":  node.Key,
		"name": node.Name,
		"type": node.Type,
	})
}

func (s *BoltStore) HasEdge(ctx context.Context, src, dst string) (bool, error) {
	n, err := s.count(ctx, HasRelationQuery, pairParams(src, dst))
	return n > 0, err
}

func (s *BoltStore) GetEdge(ctx context.Context, src, dst string) (model.Relationship, error) {
	res, err := s.exec.ExecuteQuery(ctx, GetRelationQuery, pairParams(src, dst))
	if err != nil {
		return model.Relationship{}, err
	}
	if len(res.Records) == 0 {
		return model.Relationship{}, model.ErrEdgeNotFound
	}
	rec := res.Records[0]
	return model.Relationship{
		SourceKey:   src,
		TargetKey:   dst,
		Relation:    stringValue(rec, "relation"),
		Attributes:  stringValue(rec, "attributes"),
		Destination: stringValue(rec, "destination"),
	}, nil
}

func (s *BoltStore) AddEdge(ctx context.Context, edge model.Relationship) (bool, error) {
	params := pairParams(edge.SourceKey, edge.TargetKey)
	params["relation"] = edge.Relation
	params["attributes"] = edge.Attributes
	params["destination"] = edge.Destination
	return s.create(ctx, SaveRelationQuery, params)
}

func (s *BoltStore) ShortestPath(ctx context.Context, src, dst string) ([]string, error) {
	for _, k := range []string{src, dst} {
		ok, err := s.HasNode(ctx, k)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, model.ErrNodeNotFound
		}
	}
	if src == dst {
		return []string{src}, nil
	}

	res, err := s.exec.ExecuteQuery(ctx, s.dialect.shortestPathQuery(), pairParams(src, dst))
	if err != nil {
		return nil, err
	}
	if len(res.Records) == 0 {
		return nil, model.ErrNoPath
	}
	raw, _ := res.Records[0].Get("keys")
	list, _ := raw.([]interface{})
	path := make([]string, 0, len(list))
	for _, v := range list {
		if k, ok := v.(string); ok {
			path = append(path, k)
		}
	}
	if len(path) == 0 {
		return nil, model.ErrNoPath
	}
	return path, nil
}

func (s *BoltStore) ReachableWithin(ctx context.Context, src string, hops int) ([]string, error) {
	ok, err := s.HasNode(ctx, src)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrNodeNotFound
	}
	keys := []string{src}
	if hops <= 0 {
		return keys, nil
	}

	query := fmt.Sprintf(ReachableWithinQuery, hops)
	res, err := s.exec.ExecuteQuery(ctx, query, map[string]interface{}{"source_key": src})
	if err != nil {
		return nil, err
	}
	for _, rec := range res.Records {
		if k := stringValue(rec, "key"); k != "" && k != src {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (s *BoltStore) Stats(ctx context.Context) (Stats, error) {
	nodes, err := s.count(ctx, CountEntitiesQuery, nil)
	if err != nil {
		return Stats{}, err
	}
	edges, err := s.count(ctx, CountRelationsQuery, nil)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Nodes: int(nodes), Edges: int(edges)}, nil
}

func (s *BoltStore) Close(ctx context.Context) error {
	return s.exec.Close(ctx)
}

func (s *BoltStore) count(ctx context.Context, query string, params map[string]interface{}) (int64, error) {
	res, err := s.exec.ExecuteQuery(ctx, query, params)
	if err != nil {
		return 0, err
	}
	if len(res.Records) == 0 {
		return 0, nil
	}
	v, _ := res.Records[0].Get("count")
	n, _ := v.(int64)
	return n, nil
}

// create runs a MERGE ... ON CREATE statement tagged with a fresh token. No
// record means the MATCHed endpoints were missing.
func (s *BoltStore) create(ctx context.Context, query string, params map[string]interface{}) (bool, error) {
	params["token"] = s.tokens()
	res, err := s.exec.ExecuteQuery(ctx, query, params)
	if err != nil {
		return false, err
	}
	if len(res.Records) == 0 {
		return false, model.ErrNodeNotFound
	}
	v, _ := res.Records[0].Get("created")
	created, _ := v.(bool)
	return created, nil
}

func pairParams(src, dst string) map[string]interface{} {
	return map[string]interface{}{
		"source_key": src,
		"target_key": dst,
	}
}

func stringValue(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
