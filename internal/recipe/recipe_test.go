package recipe

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileCorpusSaveAndListAll(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileCorpus(dir)
	if err != nil {
		t.Fatalf("NewFileCorpus failed: %v", err)
	}

	rec1 := Recipe{ID: "1", Name: "Pasta", Ingredients: []string{"pasta", "tomato"}, Calories: 520, Cuisine: "italian"}
	rec2 := Recipe{ID: "2", Name: "Salad", Ingredients: []string{"lettuce", "tomato"}, Calories: 310, Cuisine: "mediterranean"}

	if err := store.Save(rec1); err != nil {
		t.Fatalf("Save rec1 failed: %v", err)
	}
	if err := store.Save(rec2); err != nil {
		t.Fatalf("Save rec2 failed: %v", err)
	}

	recipes, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(recipes))
	}

	if !store.Exists("1") {
		t.Error("Exists(\"1\") = false, want true")
	}
	if store.Exists("missing") {
		t.Error("Exists(\"missing\") = true, want false")
	}

	loaded, err := store.Load("1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != "Pasta" || loaded.Calories != 520 {
		t.Errorf("loaded recipe = %+v, want Pasta/520", loaded)
	}
}

func TestFileCorpusSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileCorpus(dir)
	if err != nil {
		t.Fatalf("NewFileCorpus failed: %v", err)
	}

	if err := store.Save(Recipe{ID: "ok", Name: "Soup", Ingredients: []string{"broth"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing corrupt file failed: %v", err)
	}

	recipes, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(recipes) != 1 || recipes[0].ID != "ok" {
		t.Errorf("expected only the valid recipe, got %+v", recipes)
	}
}

func TestFileCorpusSaveRequiresID(t *testing.T) {
	store, err := NewFileCorpus(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCorpus failed: %v", err)
	}
	if err := store.Save(Recipe{Name: "No ID"}); err == nil {
		t.Error("Save without ID succeeded, want error")
	}
}

func TestStaticCorpusCopies(t *testing.T) {
	corpus := StaticCorpus{{ID: "1", Name: "Pasta"}}
	first, _ := corpus.ListAll(context.Background())
	first[0].Name = "Changed"

	second, _ := corpus.ListAll(context.Background())
	if second[0].Name != "Pasta" {
		t.Error("ListAll returned a shared slice; callers must not be able to mutate the corpus")
	}
}
