package chunker

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clauseworks/pactdiff/internal/core/domain"
)

func TestName(t *testing.T) {
	assert.Equal(t, "chunker", New().Name())
}

func TestProcess_EmptyContent(t *testing.T) {
	doc := &domain.Document{ID: "doc-1", Content: ""}

	chunks, err := New().Process(context.Background(), doc, nil)
	require.NoError(t, err)
	assert.Nil(t, chunks)
}

func TestProcess_SingleChunk(t *testing.T) {
	doc := &domain.Document{
		ID:      "doc-1",
		Content: "The buyer shall pay on time. The seller shall deliver the goods.",
	}

	chunks, err := New().Process(context.Background(), doc, nil)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	chunk := chunks[0]
	assert.NotEmpty(t, chunk.ID)
	assert.Equal(t, "doc-1", chunk.DocumentID)
	assert.Equal(t, 0, chunk.Position)
	assert.Contains(t, chunk.Content, "The buyer shall pay on time.")
	assert.Contains(t, chunk.Content, "The seller shall deliver the goods.")
	assert.Equal(t, 2, chunk.Metadata["sentences"])
}

func TestProcess_SplitsAtSentenceBoundaries(t *testing.T) {
	// Three sentences of ~40 chars each with a 60-char budget forces a
	// split, and the split must land between sentences.
	sentences := []string{
		"The first clause covers payment terms fully.",
		"The second clause covers warranty periods.",
		"The third clause covers liability limits.",
	}
	doc := &domain.Document{
		ID:      "doc-1",
		Content: strings.Join(sentences, " "),
	}

	chunks, err := New(WithChunkSize(60), WithOverlapSentences(0)).
		Process(context.Background(), doc, nil)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Position)
		assert.Equal(t, sentences[i], chunk.Content)
	}
}

func TestProcess_OverlapCarriesTrailingSentence(t *testing.T) {
	sentences := []string{
		"Clause one is about payment obligations here.",
		"Clause two is about termination conditions.",
		"Clause three is about governing law matters.",
	}
	doc := &domain.Document{
		ID:      "doc-1",
		Content: strings.Join(sentences, " "),
	}

	chunks, err := New(WithChunkSize(100), WithOverlapSentences(1)).
		Process(context.Background(), doc, nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(chunks), 2)

	// The last sentence of chunk N opens chunk N+1
	first := strings.Split(chunks[0].Content, ". ")
	assert.True(t, strings.HasPrefix(chunks[1].Content, strings.TrimSuffix(first[len(first)-1], ".")))
}

func TestProcess_LongSentenceGetsOwnChunk(t *testing.T) {
	long := "This single sentence runs far past the configured chunk size because contracts love run-on clauses that enumerate every possible obligation."
	doc := &domain.Document{
		ID:      "doc-1",
		Content: long + " Short one follows.",
	}

	chunks, err := New(WithChunkSize(50), WithOverlapSentences(0)).
		Process(context.Background(), doc, nil)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, long, chunks[0].Content)
	assert.Equal(t, "Short one follows.", chunks[1].Content)
}

func TestOptions_IgnoreInvalidValues(t *testing.T) {
	p := New(WithChunkSize(-1), WithOverlapSentences(-5))
	assert.Equal(t, DefaultChunkSize, p.chunkSize)
	assert.Equal(t, DefaultOverlapSentences, p.overlapSentences)
}
