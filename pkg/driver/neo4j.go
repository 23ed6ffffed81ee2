package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/tripwise/go-tripgraph/pkg/types"
)

// Neo4jDriver implements the GraphDriver interface for Neo4j databases.
type Neo4jDriver struct {
	client   neo4j.DriverWithContext
	database string
}

var _ GraphDriver = (*Neo4jDriver)(nil)

// NewNeo4jDriver creates a new Neo4j driver instance. An empty
// username selects an unauthenticated connection; an empty database
// selects the server default "neo4j".
func NewNeo4jDriver(uri, username, password, database string) (*Neo4jDriver, error) {
	auth := neo4j.BasicAuth(username, password, "")
	if username == "" {
		auth = neo4j.NoAuth()
	}

	driver, err := neo4j.NewDriverWithContext(uri, auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if database == "" {
		database = "neo4j"
	}

	return &Neo4jDriver{
		client:   driver,
		database: database,
	}, nil
}

// VerifyConnectivity checks that the server behind the configured URI
// is reachable and the credentials are accepted.
func (n *Neo4jDriver) VerifyConnectivity(ctx context.Context) error {
	return n.client.VerifyConnectivity(ctx)
}

func (n *Neo4jDriver) writeSession(ctx context.Context) neo4j.SessionWithContext {
	return n.client.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: n.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
}

func (n *Neo4jDriver) readSession(ctx context.Context) neo4j.SessionWithContext {
	return n.client.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: n.database,
		AccessMode:   neo4j.AccessModeRead,
	})
}

// CreateConstraints declares the uniqueness constraints behind every
// MERGE key. All statements use IF NOT EXISTS, so re-running against
// a constrained database is a no-op.
func (n *Neo4jDriver) CreateConstraints(ctx context.Context) error {
	session := n.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		constraints := []string{
			"CREATE CONSTRAINT IF NOT EXISTS FOR (t:Traveller) REQUIRE t.user_id IS UNIQUE",
			"CREATE CONSTRAINT IF NOT EXISTS FOR (h:Hotel) REQUIRE h.hotel_id IS UNIQUE",
			"CREATE CONSTRAINT IF NOT EXISTS FOR (r:Review) REQUIRE r.review_id IS UNIQUE",
			"CREATE CONSTRAINT IF NOT EXISTS FOR (c:City) REQUIRE c.name IS UNIQUE",
			"CREATE CONSTRAINT IF NOT EXISTS FOR (co:Country) REQUIRE co.name IS UNIQUE",
		}

		for _, constraint := range constraints {
			if _, err := tx.Run(ctx, constraint, nil); err != nil {
				return nil, fmt.Errorf("create constraint: %w", err)
			}
		}

		return nil, nil
	})

	return err
}

// UpsertTravellers merges traveller nodes keyed by user_id. The
// country and join date columns are not stored on the node: the
// country becomes a FROM_COUNTRY edge in BuildGeography.
func (n *Neo4jDriver) UpsertTravellers(ctx context.Context, travellers []types.Traveller) error {
	if len(travellers) == 0 {
		return nil
	}

	session := n.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			UNWIND $rows AS row
			MERGE (t:Traveller {user_id: row.user_id})
			SET t.age = row.age_group,
			    t.type = row.traveller_type,
			    t.gender = row.user_gender
		`
		_, err := tx.Run(ctx, query, map[string]any{"rows": travellerRows(travellers)})
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("upsert travellers: %w", err)
	}

	return nil
}

// UpsertHotels merges hotel nodes keyed by hotel_id. Only the name,
// star rating and the cleanliness, comfort and facilities base scores
// are stored on the node; the city and country columns feed
// BuildGeography instead.
func (n *Neo4jDriver) UpsertHotels(ctx context.Context, hotels []types.Hotel) error {
	if len(hotels) == 0 {
		return nil
	}

	session := n.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			UNWIND $rows AS row
			MERGE (h:Hotel {hotel_id: row.hotel_id})
			SET h.name = row.hotel_name,
			    h.star_rating = row.star_rating,
			    h.cleanliness_base = row.cleanliness_base,
			    h.comfort_base = row.comfort_base,
			    h.facilities_base = row.facilities_base
		`
		_, err := tx.Run(ctx, query, map[string]any{"rows": hotelRows(hotels)})
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("upsert hotels: %w", err)
	}

	return nil
}

// BuildGeography merges the Country and City nodes named by the
// traveller and hotel rows and connects them: each hotel to its city,
// each city to its country and each traveller to their home country.
// Rows with an empty city or country simply contribute no node or
// edge. Traveller and hotel nodes must already exist.
func (n *Neo4jDriver) BuildGeography(ctx context.Context, travellers []types.Traveller, hotels []types.Hotel) error {
	session := n.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		statements := []struct {
			name   string
			query  string
			params map[string]any
		}{
			{
				name: "merge countries",
				query: `
					UNWIND $names AS name
					MERGE (:Country {name: name})
				`,
				params: map[string]any{"names": countryNames(travellers, hotels)},
			},
			{
				name: "merge cities",
				query: `
					UNWIND $names AS name
					MERGE (:City {name: name})
				`,
				params: map[string]any{"names": cityNames(hotels)},
			},
			{
				name: "link hotels to cities",
				query: `
					UNWIND $rows AS row
					MATCH (h:Hotel {hotel_id: row.hotel_id})
					MATCH (c:City {name: row.city})
					MERGE (h)-[:LOCATED_IN]->(c)
				`,
				params: map[string]any{"rows": hotelCityPairs(hotels)},
			},
			{
				name: "link cities to countries",
				query: `
					UNWIND $rows AS row
					MATCH (ci:City {name: row.city})
					MATCH (co:Country {name: row.country})
					MERGE (ci)-[:LOCATED_IN]->(co)
				`,
				params: map[string]any{"rows": cityCountryPairs(hotels)},
			},
			{
				name: "link travellers to countries",
				query: `
					UNWIND $rows AS row
					MATCH (t:Traveller {user_id: row.user_id})
					MATCH (c:Country {name: row.country})
					MERGE (t)-[:FROM_COUNTRY]->(c)
				`,
				params: map[string]any{"rows": travellerCountryPairs(travellers)},
			},
		}

		for _, stmt := range statements {
			if _, err := tx.Run(ctx, stmt.query, stmt.params); err != nil {
				return nil, fmt.Errorf("%s: %w", stmt.name, err)
			}
		}

		return nil, nil
	})

	return err
}

// IngestReviews merges review nodes keyed by review_id and connects
// each to its author and hotel: (t)-[:WROTE]->(r), (r)-[:REVIEWED]->(h)
// and the direct (t)-[:STAYED_AT]->(h) shortcut. Reviews referencing
// an unknown traveller or hotel get a node but no edges.
func (n *Neo4jDriver) IngestReviews(ctx context.Context, reviews []types.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	session := n.writeSession(ctx)
	defer session.Close(ctx)

	rows := reviewRows(reviews)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		statements := []struct {
			name  string
			query string
		}{
			{
				name: "merge reviews",
				query: `
					UNWIND $rows AS row
					MERGE (r:Review {review_id: row.review_id})
					SET r.text = row.review_text,
					    r.date = row.review_date,
					    r.score_overall = row.score_overall,
					    r.score_cleanliness = row.score_cleanliness,
					    r.score_comfort = row.score_comfort,
					    r.score_facilities = row.score_facilities,
					    r.score_location = row.score_location,
					    r.score_staff = row.score_staff,
					    r.score_value_for_money = row.score_value_for_money
				`,
			},
			{
				name: "link authors",
				query: `
					UNWIND $rows AS row
					MATCH (t:Traveller {user_id: row.user_id})
					MATCH (r:Review {review_id: row.review_id})
					MERGE (t)-[:WROTE]->(r)
				`,
			},
			{
				name: "link reviewed hotels",
				query: `
					UNWIND $rows AS row
					MATCH (r:Review {review_id: row.review_id})
					MATCH (h:Hotel {hotel_id: row.hotel_id})
					MERGE (r)-[:REVIEWED]->(h)
				`,
			},
			{
				name: "link stays",
				query: `
					UNWIND $rows AS row
					MATCH (t:Traveller {user_id: row.user_id})
					MATCH (h:Hotel {hotel_id: row.hotel_id})
					MERGE (t)-[:STAYED_AT]->(h)
				`,
			},
		}

		for _, stmt := range statements {
			if _, err := tx.Run(ctx, stmt.query, map[string]any{"rows": rows}); err != nil {
				return nil, fmt.Errorf("%s: %w", stmt.name, err)
			}
		}

		return nil, nil
	})

	return err
}

// AggregateReviewScores computes the mean overall score per reviewed
// hotel and stores it as average_reviews_score. Hotels without
// reviews are not matched and keep whatever value they had, usually
// none.
func (n *Neo4jDriver) AggregateReviewScores(ctx context.Context) error {
	session := n.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			MATCH (h:Hotel)<-[:REVIEWED]-(r:Review)
			WITH h, avg(r.score_overall) AS avgScore
			SET h.average_reviews_score = avgScore
		`
		_, err := tx.Run(ctx, query, nil)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("aggregate review scores: %w", err)
	}

	return nil
}

// ApplyVisaRules merges a NEEDS_VISA edge between the two countries
// of each rule that requires a visa. Rules that do not require one
// create nothing, and rules naming countries absent from the graph
// match nothing. The visa type is stored on the edge.
func (n *Neo4jDriver) ApplyVisaRules(ctx context.Context, rules []types.VisaRule) error {
	if len(rules) == 0 {
		return nil
	}

	session := n.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := `
			UNWIND $rows AS row
			MATCH (c1:Country {name: row.from})
			MATCH (c2:Country {name: row.to})
			FOREACH (_ IN CASE WHEN row.requires_visa THEN [1] ELSE [] END |
				MERGE (c1)-[v:NEEDS_VISA]->(c2)
				SET v.visa_type = row.visa_type
			)
		`
		_, err := tx.Run(ctx, query, map[string]any{"rows": visaRows(rules)})
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("apply visa rules: %w", err)
	}

	return nil
}

// GetNodeProperties returns the property map of the node identified
// by ref, or an error if no such node exists.
func (n *Neo4jDriver) GetNodeProperties(ctx context.Context, ref NodeRef) (map[string]any, error) {
	session := n.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := fmt.Sprintf(`
			MATCH (n:%s {%s: $value})
			RETURN properties(n) AS props
		`, ref.Label, ref.Key)
		res, err := tx.Run(ctx, query, map[string]any{"value": ref.Value})
		if err != nil {
			return nil, err
		}

		record, err := res.Single(ctx)
		if err != nil {
			if err.Error() == "Result contains no more records" {
				return nil, fmt.Errorf("node %s {%s: %s} not found", ref.Label, ref.Key, ref.Value)
			}
			return nil, err
		}

		return record, nil
	})
	if err != nil {
		return nil, err
	}

	record := result.(*db.Record)
	propsValue, found := record.Get("props")
	if !found {
		return nil, fmt.Errorf("node %s {%s: %s} not found", ref.Label, ref.Key, ref.Value)
	}

	return propsValue.(map[string]any), nil
}

// CountNodes returns the number of nodes with the given label, or of
// all nodes when the label is empty.
func (n *Neo4jDriver) CountNodes(ctx context.Context, label string) (int64, error) {
	query := "MATCH (n) RETURN count(n) AS count"
	if label != "" {
		query = fmt.Sprintf("MATCH (n:%s) RETURN count(n) AS count", label)
	}
	return n.count(ctx, query)
}

// CountRelationships returns the number of relationships of the given
// type, or of all relationships when the type is empty.
func (n *Neo4jDriver) CountRelationships(ctx context.Context, relType string) (int64, error) {
	query := "MATCH ()-[r]->() RETURN count(r) AS count"
	if relType != "" {
		query = fmt.Sprintf("MATCH ()-[r:%s]->() RETURN count(r) AS count", relType)
	}
	return n.count(ctx, query)
}

func (n *Neo4jDriver) count(ctx context.Context, query string) (int64, error) {
	session := n.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		return res.Single(ctx)
	})
	if err != nil {
		return 0, err
	}

	record := result.(*db.Record)
	countValue, found := record.Get("count")
	if !found {
		return 0, fmt.Errorf("count query returned no count column")
	}

	return countValue.(int64), nil
}

// HasRelationship reports whether an edge of the given type exists
// between the two referenced nodes.
func (n *Neo4jDriver) HasRelationship(ctx context.Context, from NodeRef, relType string, to NodeRef) (bool, error) {
	session := n.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		query := fmt.Sprintf(`
			MATCH (a:%s {%s: $from})-[:%s]->(b:%s {%s: $to})
			RETURN count(*) AS count
		`, from.Label, from.Key, relType, to.Label, to.Key)
		res, err := tx.Run(ctx, query, map[string]any{
			"from": from.Value,
			"to":   to.Value,
		})
		if err != nil {
			return nil, err
		}
		return res.Single(ctx)
	})
	if err != nil {
		return false, err
	}

	record := result.(*db.Record)
	countValue, found := record.Get("count")
	if !found {
		return false, fmt.Errorf("existence query returned no count column")
	}

	return countValue.(int64) > 0, nil
}

// GetStats returns node counts by label and relationship counts by
// type for the whole database.
func (n *Neo4jDriver) GetStats(ctx context.Context) (*types.GraphStats, error) {
	session := n.readSession(ctx)
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		nodeQuery := `
			MATCH (n)
			UNWIND labels(n) AS label
			RETURN label, count(*) AS count
		`
		nodeRes, err := tx.Run(ctx, nodeQuery, nil)
		if err != nil {
			return nil, err
		}
		nodeRecords, err := nodeRes.Collect(ctx)
		if err != nil {
			return nil, err
		}

		relQuery := `
			MATCH ()-[r]->()
			RETURN type(r) AS type, count(*) AS count
		`
		relRes, err := tx.Run(ctx, relQuery, nil)
		if err != nil {
			return nil, err
		}
		relRecords, err := relRes.Collect(ctx)
		if err != nil {
			return nil, err
		}

		return map[string]any{
			"nodes":         nodeRecords,
			"relationships": relRecords,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	data := result.(map[string]any)
	stats := &types.GraphStats{
		Nodes:         make(map[string]int64),
		Relationships: make(map[string]int64),
	}

	for _, record := range data["nodes"].([]*db.Record) {
		label, _ := record.Get("label")
		count, _ := record.Get("count")
		if label != nil && count != nil {
			stats.Nodes[label.(string)] = count.(int64)
		}
	}
	for _, record := range data["relationships"].([]*db.Record) {
		relType, _ := record.Get("type")
		count, _ := record.Get("count")
		if relType != nil && count != nil {
			stats.Relationships[relType.(string)] = count.(int64)
		}
	}

	return stats, nil
}

// DeleteAll removes every node and relationship in the database.
// Intended for tests and local resets, so it is not part of the
// GraphDriver interface.
func (n *Neo4jDriver) DeleteAll(ctx context.Context) error {
	session := n.writeSession(ctx)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
		return nil, err
	})

	return err
}

// Close closes the underlying driver and its connection pool.
func (n *Neo4jDriver) Close(ctx context.Context) error {
	return n.client.Close(ctx)
}
