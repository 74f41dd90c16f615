package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listsmith/listsmith-backend/internal/assist/llm"
	"github.com/listsmith/listsmith-backend/internal/assist/scrape"
)

func fakeScrape(t *testing.T, success bool, content, message string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": success,
			"content": content,
			"message": message,
		})
	}))
}

func fakeExtractor(t *testing.T, output string, ok bool) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok":     ok,
			"output": output,
		})
	}))
}

func TestImporter_ImportFromURL(t *testing.T) {
	t.Run("maps extracted fields onto a patch", func(t *testing.T) {
		scrapeSrv := fakeScrape(t, true, "Vintage Lamp. Brass. Rewired.", "")
		defer scrapeSrv.Close()
		llmSrv := fakeExtractor(t, `{"title":"Vintage Lamp","description":"A fine brass lamp.","keywords":["vintage","brass"],"highlights":["Rewired 2024"]}`, true)
		defer llmSrv.Close()

		imp := NewImporter(scrape.NewClient(scrapeSrv.URL), llm.NewClient(llmSrv.URL, 100))
		patch, err := imp.ImportFromURL(context.Background(), "https://example.com/item/42")
		require.NoError(t, err)

		require.NotNil(t, patch.Title)
		assert.Equal(t, "Vintage Lamp", *patch.Title)
		require.NotNil(t, patch.Description)
		assert.Equal(t, "A fine brass lamp.", *patch.Description)
		require.NotNil(t, patch.SEOKeywords)
		assert.Equal(t, []string{"vintage", "brass"}, *patch.SEOKeywords)
		require.NotNil(t, patch.Highlights)
		assert.Equal(t, []string{"Rewired 2024"}, *patch.Highlights)
	})

	t.Run("tolerates prose around the JSON object", func(t *testing.T) {
		scrapeSrv := fakeScrape(t, true, "Vintage Lamp page text", "")
		defer scrapeSrv.Close()
		llmSrv := fakeExtractor(t, "Sure, here you go:\n{\"title\":\"Vintage Lamp\",\"description\":\"d\"}\nDone.", true)
		defer llmSrv.Close()

		imp := NewImporter(scrape.NewClient(scrapeSrv.URL), llm.NewClient(llmSrv.URL, 100))
		patch, err := imp.ImportFromURL(context.Background(), "https://example.com/item/42")
		require.NoError(t, err)
		require.NotNil(t, patch.Title)
		assert.Equal(t, "Vintage Lamp", *patch.Title)
	})

	t.Run("degrades to plain-text extraction on unusable model output", func(t *testing.T) {
		scrapeSrv := fakeScrape(t, true, "Vintage Brass Lamp\nA fine lamp from the 1930s.", "")
		defer scrapeSrv.Close()
		llmSrv := fakeExtractor(t, "I could not do that.", true)
		defer llmSrv.Close()

		imp := NewImporter(scrape.NewClient(scrapeSrv.URL), llm.NewClient(llmSrv.URL, 100))
		patch, err := imp.ImportFromURL(context.Background(), "https://example.com/item/42")
		require.NoError(t, err)
		require.NotNil(t, patch.Title)
		assert.Equal(t, "Vintage Brass Lamp", *patch.Title)
		require.NotNil(t, patch.Description)
		assert.Contains(t, *patch.Description, "1930s")
		assert.Nil(t, patch.SEOKeywords)
	})

	t.Run("a failed scrape surfaces as an error", func(t *testing.T) {
		scrapeSrv := fakeScrape(t, false, "", "page requires login")
		defer scrapeSrv.Close()
		llmSrv := fakeExtractor(t, "", true)
		defer llmSrv.Close()

		imp := NewImporter(scrape.NewClient(scrapeSrv.URL), llm.NewClient(llmSrv.URL, 100))
		_, err := imp.ImportFromURL(context.Background(), "https://example.com/item/42")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "page requires login")
	})
}
