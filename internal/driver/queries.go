package driver

const (
	HasEntityQuery = `
		MATCH (n:Entity {key: $key})
		RETURN count(n) AS count
	`

	GetEntityQuery = `
		MATCH (n:Entity {key: $key})
		RETURN n.key AS key, n.name AS name, n.type AS type
		LIMIT 1
	`

	// MERGE keeps the first writer's name and type; created_by tells the
	// caller whether this statement was the one that created the node.
	SaveEntityQuery = `
		MERGE (n:Entity {key: $key})
		ON CREATE SET n.name = $name,
			n.type = $type,
			n.created_by = $token
		RETURN n.created_by = $token AS created
	`

	HasRelationQuery = `
		MATCH (:Entity {key: $source_key})-[r:RELATES_TO]->(:Entity {key: $target_key})
		RETURN count(r) AS count
	`

	GetRelationQuery = `
		MATCH (:Entity {key: $source_key})-[r:RELATES_TO]->(:Entity {key: $target_key})
		RETURN r.relation AS relation, r.attributes AS attributes, r.destination AS destination
		LIMIT 1
	`

	// Pattern MERGE without properties matches any existing edge of the
	// pair, so the first relation label discovered stays authoritative.
	SaveRelationQuery = `
		MATCH (source:Entity {key: $source_key})
		MATCH (target:Entity {key: $target_key})
		MERGE (source)-[r:RELATES_TO]->(target)
		ON CREATE SET r.relation = $relation,
			r.attributes = $attributes,
			r.destination = $destination,
			r.created_by = $token
		RETURN r.created_by = $token AS created
	`

	// %d is the hop limit; Cypher does not accept parameters in
	// variable-length bounds.
	ReachableWithinQuery = `
		MATCH p = (s:Entity {key: $source_key})-[:RELATES_TO*1..%d]->(t:Entity)
		WITH t.key AS key, min(length(p)) AS dist
		RETURN key, dist
		ORDER BY dist, key
	`

	CountEntitiesQuery = `
		MATCH (n:Entity)
		RETURN count(n) AS count
	`

	CountRelationsQuery = `
		MATCH (:Entity)-[r:RELATES_TO]->(:Entity)
		RETURN count(r) AS count
	`
)

// Dialect selects the query variants that differ between Neo4j and Memgraph.
type Dialect string

const (
	DialectNeo4j    Dialect = "neo4j"
	DialectMemgraph Dialect = "memgraph"
)

func (d Dialect) shortestPathQuery() string {
	if d == DialectMemgraph {
		return `
			MATCH p = (s:Entity {key: $source_key})-[:RELATES_TO *BFS]->(t:Entity {key: $target_key})
			RETURN [n IN nodes(p) | n.key] AS keys
			LIMIT 1
		`
	}
	return `
		MATCH (s:Entity {key: $source_key})
		MATCH (t:Entity {key: $target_key})
		MATCH p = shortestPath((s)-[:RELATES_TO*]->(t))
		RETURN [n IN nodes(p) | n.key] AS keys
		LIMIT 1
	`
}

func (d Dialect) indexQueries() []string {
	if d == DialectMemgraph {
		return []string{
			"CREATE INDEX ON :Entity(key);",
			"CREATE CONSTRAINT ON (n:Entity) ASSERT n.key IS UNIQUE;",
		}
	}
	return []string{
		"CREATE CONSTRAINT entity_key IF NOT EXISTS FOR (n:Entity) REQUIRE n.key IS UNIQUE",
	}
}
