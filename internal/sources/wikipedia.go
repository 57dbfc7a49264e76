package sources

import (
	"context"
	"net/url"
)

// NoWikipediaInfo is the description used when a search has no hits.
const NoWikipediaInfo = "No information found on Wikipedia"

// WikipediaClient resolves a place name to the plain-text extract of its
// best matching article.
type WikipediaClient struct {
	baseURL string
	up      *upstream
}

func NewWikipediaClient(baseURL string, opts Options) *WikipediaClient {
	return &WikipediaClient{
		baseURL: baseURL,
		up:      newUpstream("wikipedia", opts),
	}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Describe searches for name and returns the extract of the top hit.
func (c *WikipediaClient) Describe(ctx context.Context, name string) (string, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("list", "search")
	q.Set("srsearch", name)
	q.Set("format", "json")
	q.Set("origin", "*")

	var search searchResponse
	if err := c.up.getJSON(ctx, c.baseURL+"?"+q.Encode(), &search); err != nil {
		return "", err
	}
	if len(search.Query.Search) == 0 {
		return NoWikipediaInfo, nil
	}
	title := search.Query.Search[0].Title

	q = url.Values{}
	q.Set("action", "query")
	q.Set("format", "json")
	q.Set("prop", "extracts")
	q.Set("titles", title)
	q.Set("explaintext", "1")
	q.Set("origin", "*")

	var extract extractResponse
	if err := c.up.getJSON(ctx, c.baseURL+"?"+q.Encode(), &extract); err != nil {
		return "", err
	}
	for _, page := range extract.Query.Pages {
		return page.Extract, nil
	}
	return NoWikipediaInfo, nil
}
