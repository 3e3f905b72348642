package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nutriplan/internal/llm"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// Importer fetches recipe pages and turns them into corpus entries.
type Importer struct {
	httpClient *http.Client
	textGen    llm.TextGenerator
	corpus     *FileCorpus
}

// extractedRecipe is the shape the model is asked to return.
type extractedRecipe struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Ingredients []string       `json:"ingredients"`
	Calories    int            `json:"calories"`
	Macros      map[string]int `json:"macros"`
	Cuisine     string         `json:"cuisine"`
	Tags        []string       `json:"tags"`
}

// NewImporter creates an Importer writing into the given corpus.
func NewImporter(textGen llm.TextGenerator, corpus *FileCorpus) *Importer {
	return &Importer{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		textGen:    textGen,
		corpus:     corpus,
	}
}

// ImportURL fetches the URL, extracts a structured recipe and saves it to
// the corpus. Returns the stored recipe.
func (im *Importer) ImportURL(ctx context.Context, url string) (*Recipe, error) {
	resp, err := im.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	return im.ImportHTML(ctx, resp.Body)
}

// ImportHTML extracts a recipe from raw HTML and saves it to the corpus.
func (im *Importer) ImportHTML(ctx context.Context, r io.Reader) (*Recipe, error) {
	content, err := cleanHTML(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract the recipe details from the following page content.
Estimate calories and macros per serving when they are not stated.
Return the result strictly as a JSON object with this structure:
{
  "name": "Recipe Name",
  "description": "One sentence summary",
  "ingredients": ["item 1", "item 2", ...],
  "calories": 450,
  "macros": {"protein": 20, "carbs": 30, "fat": 10},
  "cuisine": "e.g. italian",
  "tags": ["tag1", "tag2"]
}

Ensure the output is valid JSON. Do not include any other text in your response.
Return ONLY the raw JSON string. Do not wrap the response in markdown code blocks.

Page Content:
%s
`, content)

	llmResponse, err := im.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}

	var extracted extractedRecipe
	if err := json.Unmarshal([]byte(llmResponse), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, llmResponse)
	}
	if extracted.Name == "" || len(extracted.Ingredients) == 0 {
		return nil, fmt.Errorf("extraction produced no usable recipe")
	}

	rec := Recipe{
		ID:          uuid.NewString(),
		Name:        extracted.Name,
		Description: extracted.Description,
		Ingredients: extracted.Ingredients,
		Calories:    extracted.Calories,
		Macros:      extracted.Macros,
		Cuisine:     strings.ToLower(extracted.Cuisine),
		Tags:        extracted.Tags,
	}

	if err := im.corpus.Save(rec); err != nil {
		return nil, fmt.Errorf("failed to save imported recipe: %w", err)
	}

	return &rec, nil
}

// cleanHTML strips noise so the model sees only the readable page text.
func cleanHTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", err
	}

	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}
