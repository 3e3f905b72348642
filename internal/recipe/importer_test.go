package recipe

import (
	"context"
	"strings"
	"testing"
)

type mockTextGenerator struct {
	response string
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	// The prompt must contain the page text, not the raw markup.
	if strings.Contains(prompt, "<script>") {
		return "", nil
	}
	return m.response, nil
}

const samplePage = `
<html>
<head><script>tracking();</script><style>.x{}</style></head>
<body>
<nav>Home | Recipes</nav>
<h1>Lemon Garlic Chicken</h1>
<ul><li>2 chicken breasts</li><li>1 lemon</li><li>3 cloves garlic</li></ul>
<footer>Copyright</footer>
</body>
</html>`

func TestImportHTML(t *testing.T) {
	store, err := NewFileCorpus(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCorpus failed: %v", err)
	}

	gen := &mockTextGenerator{response: `{
		"name": "Lemon Garlic Chicken",
		"description": "Bright roasted chicken",
		"ingredients": ["chicken breast", "lemon", "garlic"],
		"calories": 430,
		"macros": {"protein": 42, "carbs": 8, "fat": 18},
		"cuisine": "Mediterranean",
		"tags": ["dinner"]
	}`}

	im := NewImporter(gen, store)
	rec, err := im.ImportHTML(context.Background(), strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("ImportHTML failed: %v", err)
	}

	if rec.ID == "" {
		t.Error("imported recipe has no generated ID")
	}
	if rec.Name != "Lemon Garlic Chicken" {
		t.Errorf("name = %q", rec.Name)
	}
	if rec.Cuisine != "mediterranean" {
		t.Errorf("cuisine = %q, want lowercased", rec.Cuisine)
	}
	if len(rec.Ingredients) != 3 {
		t.Errorf("ingredients = %v", rec.Ingredients)
	}

	// The recipe must land in the corpus.
	if !store.Exists(rec.ID) {
		t.Error("imported recipe was not saved to the corpus")
	}
}

func TestImportHTMLRejectsUnusableExtraction(t *testing.T) {
	store, err := NewFileCorpus(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCorpus failed: %v", err)
	}

	im := NewImporter(&mockTextGenerator{response: `{"name": "", "ingredients": []}`}, store)
	if _, err := im.ImportHTML(context.Background(), strings.NewReader(samplePage)); err == nil {
		t.Error("expected error for extraction with no name/ingredients")
	}

	im = NewImporter(&mockTextGenerator{response: "not json at all"}, store)
	if _, err := im.ImportHTML(context.Background(), strings.NewReader(samplePage)); err == nil {
		t.Error("expected error for non-JSON model response")
	}
}
