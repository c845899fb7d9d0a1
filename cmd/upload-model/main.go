// Command upload-model pushes the pre-trained vectorizer and classifier
// artifacts into the configured storage backend (local or S3) so the server
// can load them at startup.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"newscheck-backend/storage"

	"github.com/joho/godotenv"
)

func main() {
	vectorizerFile := flag.String("vectorizer", "vectorizer.json", "path to the vectorizer artifact")
	modelFile := flag.String("model", "model.json", "path to the classifier artifact")
	vectorizerKey := flag.String("vectorizer-key", "vectorizer.json", "storage key for the vectorizer artifact")
	modelKey := flag.String("model-key", "model.json", "storage key for the classifier artifact")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found, using environment variables: %v", err)
	}

	store, err := storage.NewStorageFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	ctx := context.Background()

	uploads := []struct {
		file string
		key  string
	}{
		{*vectorizerFile, *vectorizerKey},
		{*modelFile, *modelKey},
	}

	for _, u := range uploads {
		f, err := os.Open(u.file)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", u.file, err)
		}

		if err := store.Upload(ctx, u.key, f); err != nil {
			f.Close()
			log.Fatalf("Failed to upload %s: %v", u.file, err)
		}
		f.Close()
		log.Printf("✓ Uploaded %s as %s", u.file, u.key)
	}

	log.Println("Model artifacts uploaded")
}
