// Package suggest offers "did you mean" help topics for queries the rule
// engine could not classify. Topics live in a Qdrant collection; the query
// is embedded and the nearest topics come back with example phrasings. The
// engine core never calls this package, only the serving layer does, so an
// unreachable Qdrant degrades to no suggestions rather than query failures.
package suggest

import (
	"context"
	"fmt"
	"hash/fnv"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Topic is one suggestible help topic.
type Topic struct {
	ID        string `json:"id"`
	Text      string `json:"text"`      // what gets embedded
	Example   string `json:"example"`   // example query shown to the user
	Operation string `json:"operation"` // operation the example maps to
}

// Suggestion is one ranked hit.
type Suggestion struct {
	Topic     string  `json:"topic"`
	Example   string  `json:"example"`
	Operation string  `json:"operation"`
	Score     float32 `json:"score"`
}

// Store owns all Qdrant operations for the help-topic collection.
type Store struct {
	conn        *grpc.ClientConn
	points      pb.PointsClient
	collections pb.CollectionsClient
	collection  string
}

// NewStore connects to Qdrant at the given gRPC address.
func NewStore(addr, collection string) (*Store, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("suggest: dial qdrant %s: %w", addr, err)
	}
	return &Store{
		conn:        conn,
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		collection:  collection,
	}, nil
}

// Close closes the underlying gRPC connection.
func (s *Store) Close() error { return s.conn.Close() }

// EnsureCollection creates the topic collection if it doesn't exist.
func (s *Store) EnsureCollection(ctx context.Context, dims int) error {
	list, err := s.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("suggest: list collections: %w", err)
	}
	for _, c := range list.GetCollections() {
		if c.GetName() == s.collection {
			return nil
		}
	}

	d := uint64(dims)
	_, err = s.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     d,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("suggest: create collection %s: %w", s.collection, err)
	}
	return nil
}

// Upsert embeds every topic and writes it to the collection. Point IDs are
// derived from the topic ID so re-seeding overwrites instead of duplicating.
func (s *Store) Upsert(ctx context.Context, topics []Topic, embed Embedder) error {
	if len(topics) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, len(topics))
	for i, t := range topics {
		vec, err := embed.Embed(ctx, t.Text)
		if err != nil {
			return fmt.Errorf("suggest: embed topic %s: %w", t.ID, err)
		}
		points[i] = &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Num{Num: pointID(t.ID)},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{Data: vec},
				},
			},
			Payload: map[string]*pb.Value{
				"topic":     {Kind: &pb.Value_StringValue{StringValue: t.Text}},
				"example":   {Kind: &pb.Value_StringValue{StringValue: t.Example}},
				"operation": {Kind: &pb.Value_StringValue{StringValue: t.Operation}},
			},
		}
	}

	wait := true
	_, err := s.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("suggest: upsert %d topics: %w", len(topics), err)
	}
	return nil
}

// Search returns the nearest topics for an embedded query.
func (s *Store) Search(ctx context.Context, embedding []float32, topK int) ([]Suggestion, error) {
	resp, err := s.points.Search(ctx, &pb.SearchPoints{
		CollectionName: s.collection,
		Vector:         embedding,
		Limit:          uint64(topK),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	})
	if err != nil {
		return nil, fmt.Errorf("suggest: search: %w", err)
	}

	out := make([]Suggestion, len(resp.GetResult()))
	for i, r := range resp.GetResult() {
		sg := Suggestion{Score: r.GetScore()}
		for k, val := range r.GetPayload() {
			switch k {
			case "topic":
				sg.Topic = val.GetStringValue()
			case "example":
				sg.Example = val.GetStringValue()
			case "operation":
				sg.Operation = val.GetStringValue()
			}
		}
		out[i] = sg
	}
	return out, nil
}

func pointID(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}
