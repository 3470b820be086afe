package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/bunshodo/leakscope/internal/models"
)

// Search issues one grounded web search and returns the grounding
// citations as search hits. The model's answer text is discarded; only the
// citations matter. The endpoint is treated as authoritative - citations
// are not independently verified.
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchHit, error) {
	logrus.Debugf("grounded search: %s", query)

	resp, err := c.search.Models.GenerateContent(
		ctx,
		c.searchModel,
		genai.Text(query),
		&genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("grounded search failed: %w", err)
	}

	hits := extractGroundingHits(resp)
	logrus.Debugf("grounded search returned %d hits", len(hits))
	return hits, nil
}

// extractGroundingHits flattens grounding chunks into search hits,
// attaching the first supporting text segment as the snippet.
func extractGroundingHits(resp *genai.GenerateContentResponse) []models.SearchHit {
	var hits []models.SearchHit
	for _, cand := range resp.Candidates {
		if cand == nil || cand.GroundingMetadata == nil {
			continue
		}

		snippets := make(map[int]string)
		for _, sup := range cand.GroundingMetadata.GroundingSupports {
			if sup == nil || sup.Segment == nil {
				continue
			}
			for _, idx := range sup.GroundingChunkIndices {
				if _, ok := snippets[int(idx)]; !ok {
					snippets[int(idx)] = sup.Segment.Text
				}
			}
		}

		for i, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			title := chunk.Web.Title
			if title == "" {
				title = "untitled"
			}
			hits = append(hits, models.SearchHit{
				Title:   title,
				URL:     chunk.Web.URI,
				Snippet: snippets[i],
			})
		}
	}
	return hits
}
