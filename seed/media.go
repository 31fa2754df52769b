package seed

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"kovan/storage"
)

// Uploaded is the outcome for one media file.
type Uploaded struct {
	File string
	URL  string
	Err  error
}

// UploadMedia stores every regular file of dir under media/{file}. A failed
// file is logged and skipped; only an unreadable dir fails the whole run.
func UploadMedia(ctx context.Context, blob storage.Blob, dir string) ([]Uploaded, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read media dir: %w", err)
	}
	var out []Uploaded
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		res := Uploaded{File: e.Name()}
		res.URL, res.Err = uploadFile(ctx, blob, filepath.Join(dir, e.Name()), e.Name())
		if res.Err != nil {
			log.Printf("❌ Error uploading %s: %v", e.Name(), res.Err)
		} else {
			log.Printf("✅ Uploaded: %s", e.Name())
			log.Printf("   URL: %s", res.URL)
		}
		out = append(out, res)
	}
	return out, nil
}

func uploadFile(ctx context.Context, blob storage.Blob, path, name string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return blob.Upload(ctx, storage.MediaPath(name), f)
}
