// Package semantic owns all Qdrant operations: persisting embedded sections
// and serving scoped k-NN search over them.
package semantic

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// VectorStore is the sole owner of the section collection in Qdrant.
type VectorStore struct {
	conn        *grpc.ClientConn
	points      pb.PointsClient
	collections pb.CollectionsClient
	collection  string
}

// New creates a VectorStore connected to Qdrant at the given gRPC address.
func New(addr string, collection string) (*VectorStore, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("semantic: dial qdrant %s: %w", addr, err)
	}
	return &VectorStore{
		conn:        conn,
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		collection:  collection,
	}, nil
}

// Close closes the underlying gRPC connection.
func (v *VectorStore) Close() error {
	return v.conn.Close()
}

// EnsureCollection creates the cosine-distance collection if missing. dims
// must match the loaded embedding model; sections embedded under a different
// model must not share a collection.
func (v *VectorStore) EnsureCollection(ctx context.Context, dims int) error {
	list, err := v.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("semantic: list collections: %w", err)
	}
	for _, c := range list.GetCollections() {
		if c.GetName() == v.collection {
			return nil
		}
	}

	_, err = v.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: v.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(dims),
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("semantic: create collection %s: %w", v.collection, err)
	}
	return nil
}

// Upsert stores embedded sections. Called by the ingest pipeline.
func (v *VectorStore) Upsert(ctx context.Context, records []VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, len(records))
	for i, r := range records {
		points[i] = &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{Uuid: r.ID},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{Data: r.Embedding},
				},
			},
			Payload: toPayload(r.Payload),
		}
	}

	wait := true
	_, err := v.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: v.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("semantic: upsert %d points: %w", len(records), err)
	}
	return nil
}

// DeleteByDocID removes every section of one document. Used when a document
// is deleted or re-ingested.
func (v *VectorStore) DeleteByDocID(ctx context.Context, docID string) error {
	wait := true
	_, err := v.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: v.collection,
		Wait:           &wait,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Filter{
				Filter: &pb.Filter{
					Must: []*pb.Condition{
						fieldMatch("doc_id", docID),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("semantic: delete by doc_id %s: %w", docID, err)
	}
	return nil
}

// Search performs unscoped k-NN search.
func (v *VectorStore) Search(ctx context.Context, embedding []float32, topK int) ([]SearchResult, error) {
	return v.SearchFiltered(ctx, embedding, topK, nil)
}

// SearchFiltered performs k-NN search restricted by payload filters, e.g.
// {"cluster_id": "..."} or {"doc_id": "..."}.
func (v *VectorStore) SearchFiltered(ctx context.Context, embedding []float32, topK int, filters map[string]string) ([]SearchResult, error) {
	req := &pb.SearchPoints{
		CollectionName: v.collection,
		Vector:         embedding,
		Limit:          uint64(topK),
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	}

	if len(filters) > 0 {
		must := make([]*pb.Condition, 0, len(filters))
		for k, val := range filters {
			must = append(must, fieldMatch(k, val))
		}
		req.Filter = &pb.Filter{Must: must}
	}

	resp, err := v.points.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("semantic: search: %w", err)
	}

	results := make([]SearchResult, len(resp.GetResult()))
	for i, r := range resp.GetResult() {
		results[i] = fromPayload(r.GetId().GetUuid(), r.GetScore(), r.GetPayload())
	}
	return results, nil
}

// toPayload converts a record payload into Qdrant values.
func toPayload(payload map[string]any) map[string]*pb.Value {
	out := make(map[string]*pb.Value, len(payload))
	for k, val := range payload {
		switch tv := val.(type) {
		case string:
			out[k] = &pb.Value{Kind: &pb.Value_StringValue{StringValue: tv}}
		case int:
			out[k] = &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: int64(tv)}}
		case int64:
			out[k] = &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: tv}}
		case float64:
			out[k] = &pb.Value{Kind: &pb.Value_DoubleValue{DoubleValue: tv}}
		case bool:
			out[k] = &pb.Value{Kind: &pb.Value_BoolValue{BoolValue: tv}}
		default:
			out[k] = &pb.Value{Kind: &pb.Value_StringValue{StringValue: fmt.Sprint(tv)}}
		}
	}
	return out
}

// fromPayload rebuilds a SearchResult from a scored point's payload.
func fromPayload(id string, score float32, payload map[string]*pb.Value) SearchResult {
	sr := SearchResult{ID: id, Score: score}
	for k, val := range payload {
		switch k {
		case "title":
			sr.Title = val.GetStringValue()
		case "content":
			sr.Content = val.GetStringValue()
		case "source":
			sr.Source = val.GetStringValue()
		case "page_number":
			sr.PageNumber = int(val.GetIntegerValue())
		case "doc_id":
			sr.DocID = val.GetStringValue()
		case "cluster_id":
			sr.ClusterID = val.GetStringValue()
		}
	}
	return sr
}

func fieldMatch(key, value string) *pb.Condition {
	return &pb.Condition{
		ConditionOneOf: &pb.Condition_Field{
			Field: &pb.FieldCondition{
				Key: key,
				Match: &pb.Match{
					MatchValue: &pb.Match_Keyword{Keyword: value},
				},
			},
		},
	}
}
