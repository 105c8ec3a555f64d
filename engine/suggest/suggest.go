package suggest

import (
	"context"
	"log/slog"
)

// Searcher abstracts the topic store for testing.
type Searcher interface {
	Search(ctx context.Context, embedding []float32, topK int) ([]Suggestion, error)
}

// Suggester ties an embedder and a topic store together.
type Suggester struct {
	embed  Embedder
	store  Searcher
	topK   int
	logger *slog.Logger
}

// NewSuggester creates a Suggester. topK <= 0 defaults to 3.
func NewSuggester(embed Embedder, store Searcher, topK int, logger *slog.Logger) *Suggester {
	if topK <= 0 {
		topK = 3
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Suggester{embed: embed, store: store, topK: topK, logger: logger}
}

// Suggest embeds the query and returns the nearest help topics.
func (s *Suggester) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	vec, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.store.Search(ctx, vec, s.topK)
}

// DefaultTopics seeds the collection with the operations the engine
// understands, one topic per operation with a concrete example.
var DefaultTopics = []Topic{
	{ID: "find-vehicle", Text: "search for a vehicle by license plate, VIN, vehicle number, or driver name",
		Example: "find 56-722-64", Operation: "FIND_VEHICLE"},
	{ID: "maint-report", Text: "get a maintenance report or service history for a vehicle",
		Example: "maintenance report for 56-722-64 last month", Operation: "GET_MAINT_REPORT"},
	{ID: "report-repair", Text: "report a fault or request a repair for a vehicle",
		Example: "report repair 56-722-64", Operation: "REPORT_REPAIR"},
	{ID: "fleet-status", Text: "show the current fleet status and maintenance statistics",
		Example: "fleet status", Operation: "STATUS"},
	{ID: "help", Text: "list the available commands",
		Example: "help", Operation: "HELP"},
}
