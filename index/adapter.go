package index

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/campushq/campus-agent/embeddings"
	"github.com/campushq/campus-agent/knowledge"
)

// embedBatchSize bounds how many texts go to the embedding provider
// in a single request.
const embedBatchSize = 64

// Chunk is one retrievable unit of the knowledge index.
type Chunk struct {
	Content  string
	Category string
	Source   string
}

// Config carries the retrieval tuning knobs and the locations of the
// source documents a rebuild reads from.
type Config struct {
	Collection        string
	ChunkSize         int
	ChunkOverlap      int
	TopK              int
	FetchMultiplier   int
	KnowledgeBasePath string
	DocumentsDir      string
}

// Adapter indexes knowledge passages as embedded chunks in Postgres
// and serves similarity queries over the active generation. Rebuilds
// write a fresh generation and swap it in atomically, so readers either
// see the complete old set or the complete new set.
type Adapter struct {
	pool     *pgxpool.Pool
	embedder embeddings.Embedder
	cfg      Config
	logger   *log.Logger

	mu     sync.Mutex // serializes rebuilds
	active atomic.Pointer[generation]
	failed atomic.Bool
}

type generation struct {
	id    uuid.UUID
	count int
}

// NewAdapter validates the chunking configuration and returns an
// adapter that is not yet serving queries; call Load or Build to
// activate a generation.
func NewAdapter(pool *pgxpool.Pool, embedder embeddings.Embedder, cfg Config, logger *log.Logger) (*Adapter, error) {
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be smaller than chunk size %d", cfg.ChunkOverlap, cfg.ChunkSize)
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.FetchMultiplier <= 0 {
		cfg.FetchMultiplier = 3
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{pool: pool, embedder: embedder, cfg: cfg, logger: logger}, nil
}

// Load activates a previously built generation if the collection
// pointer references one. Finding nothing is not an error; the
// adapter just stays unready.
func (a *Adapter) Load(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var (
		genID uuid.UUID
		count int
	)
	err := a.pool.QueryRow(ctx,
		`SELECT generation, chunk_count FROM kb_collections WHERE collection = $1`,
		a.cfg.Collection,
	).Scan(&genID, &count)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		a.failed.Store(true)
		return fmt.Errorf("load collection %q: %w", a.cfg.Collection, err)
	}
	if count <= 0 {
		return nil
	}

	a.active.Store(&generation{id: genID, count: count})
	a.failed.Store(false)
	a.logger.Printf("index: loaded collection %q generation %s with %d chunks", a.cfg.Collection, genID, count)
	return nil
}

// Rebuild reads the knowledge base and document sources, chunks and
// embeds them, and swaps the result in as the new active generation.
// It returns the number of chunks indexed.
func (a *Adapter) Rebuild(ctx context.Context) (int, error) {
	passages, err := knowledge.Load(a.cfg.KnowledgeBasePath)
	if err != nil {
		a.failed.Store(true)
		return 0, fmt.Errorf("load knowledge base: %w", err)
	}
	passages = append(passages, knowledge.LoadPDFs(a.cfg.DocumentsDir, a.logger)...)
	return a.Build(ctx, passages)
}

// Build indexes the given passages as a fresh generation. An empty
// passage set clears the index instead of building one.
func (a *Adapter) Build(ctx context.Context, passages []knowledge.Passage) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.embedder == nil {
		a.failed.Store(true)
		return 0, errors.New("no embedding provider configured")
	}

	var chunks []Chunk
	for _, p := range passages {
		for _, piece := range SplitText(p.Content, a.cfg.ChunkSize, a.cfg.ChunkOverlap) {
			chunks = append(chunks, Chunk{Content: piece, Category: p.Category, Source: p.Source})
		}
	}
	if len(chunks) == 0 {
		if err := a.clear(ctx); err != nil {
			a.failed.Store(true)
			return 0, err
		}
		a.active.Store(nil)
		a.failed.Store(false)
		a.logger.Printf("index: no passages to index, collection %q cleared", a.cfg.Collection)
		return 0, nil
	}

	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		texts := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			texts = append(texts, c.Content)
		}
		batch, err := a.embedder.Embed(ctx, texts)
		if err != nil {
			a.failed.Store(true)
			return 0, fmt.Errorf("embed chunks %d-%d: %w", start, end, err)
		}
		vectors = append(vectors, batch...)
	}

	newGen := uuid.New()
	if err := a.storeGeneration(ctx, newGen, chunks, vectors); err != nil {
		a.failed.Store(true)
		return 0, err
	}

	old := a.active.Swap(&generation{id: newGen, count: len(chunks)})
	a.failed.Store(false)

	if old != nil {
		if _, err := a.pool.Exec(ctx,
			`DELETE FROM kb_chunks WHERE collection = $1 AND generation = $2`,
			a.cfg.Collection, old.id,
		); err != nil {
			a.logger.Printf("index: failed to drop superseded generation %s: %v", old.id, err)
		}
	}

	a.logger.Printf("index: built collection %q generation %s with %d chunks", a.cfg.Collection, newGen, len(chunks))
	return len(chunks), nil
}

func (a *Adapter) clear(ctx context.Context) error {
	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM kb_chunks WHERE collection = $1`, a.cfg.Collection); err != nil {
		return fmt.Errorf("clear chunks: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM kb_collections WHERE collection = $1`, a.cfg.Collection); err != nil {
		return fmt.Errorf("clear collection pointer: %w", err)
	}
	return tx.Commit(ctx)
}

// storeGeneration writes the chunk rows and the collection pointer in
// one transaction, so the pointer never references a partial set.
func (a *Adapter) storeGeneration(ctx context.Context, gen uuid.UUID, chunks []Chunk, vectors [][]float32) error {
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedding count %d does not match chunk count %d", len(vectors), len(chunks))
	}

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin index write: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, c := range chunks {
		if _, err := tx.Exec(ctx,
			`INSERT INTO kb_chunks (id, collection, generation, category, source, content, embedding)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.New(), a.cfg.Collection, gen, c.Category, c.Source, c.Content, pgvector.NewVector(vectors[i]),
		); err != nil {
			return fmt.Errorf("insert chunk %d: %w", i, err)
		}
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO kb_collections (collection, generation, chunk_count, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (collection) DO UPDATE
		 SET generation = EXCLUDED.generation, chunk_count = EXCLUDED.chunk_count, updated_at = NOW()`,
		a.cfg.Collection, gen, len(chunks),
	); err != nil {
		return fmt.Errorf("update collection pointer: %w", err)
	}

	return tx.Commit(ctx)
}

// Retrieve returns the k chunks most relevant to query, re-ranked for
// diversity. An unready index returns no results and no error.
func (a *Adapter) Retrieve(ctx context.Context, query string, k int) ([]Chunk, error) {
	gen := a.active.Load()
	if gen == nil {
		return nil, nil
	}
	if k <= 0 {
		k = a.cfg.TopK
	}
	if a.embedder == nil {
		return nil, errors.New("no embedding provider configured")
	}

	queryVecs, err := a.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(queryVecs) == 0 || len(queryVecs[0]) == 0 {
		return nil, errors.New("embedder returned no vector for query")
	}
	queryVec := queryVecs[0]

	fetchK := k * a.cfg.FetchMultiplier
	rows, err := a.pool.Query(ctx,
		`SELECT content, category, source, embedding
		 FROM kb_chunks
		 WHERE collection = $1 AND generation = $2
		 ORDER BY embedding <-> $3
		 LIMIT $4`,
		a.cfg.Collection, gen.id, pgvector.NewVector(queryVec), fetchK,
	)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	defer rows.Close()

	var candidates []candidate
	for rows.Next() {
		var (
			c   Chunk
			vec pgvector.Vector
		)
		if err := rows.Scan(&c.Content, &c.Category, &c.Source, &vec); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		candidates = append(candidates, candidate{chunk: c, embedding: vec.Slice(), rank: len(candidates)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read chunks: %w", err)
	}

	picked := rerankMMR(candidates, queryVec, k)
	out := make([]Chunk, 0, len(picked))
	for _, p := range picked {
		out = append(out, p.chunk)
	}
	return out, nil
}

// Count reports how many chunks the active generation holds.
func (a *Adapter) Count() int {
	if gen := a.active.Load(); gen != nil {
		return gen.count
	}
	return 0
}

// Status describes the index for health reporting.
func (a *Adapter) Status() string {
	if gen := a.active.Load(); gen != nil {
		return fmt.Sprintf("healthy (%d documents)", gen.count)
	}
	if a.failed.Load() {
		return "error"
	}
	return "not initialized"
}
