// Package storage keeps uploaded files in blob storage and builds their
// object paths.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

var ErrNotFound = errors.New("object not found")

// Object is one stored file.
type Object struct {
	Path string `json:"path"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// Blob is implemented by the Cloudinary driver and the in-memory driver.
type Blob interface {
	// Upload stores r under objectPath and returns its public URL.
	Upload(ctx context.Context, objectPath string, r io.Reader) (string, error)
	Delete(ctx context.Context, objectPath string) error
	// List returns the objects whose path starts with prefix.
	List(ctx context.Context, prefix string) ([]Object, error)
	URL(objectPath string) (string, error)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// CleanName reduces a client supplied file name to a safe object name. An
// unusable name is replaced by a random one keeping the extension.
func CleanName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	e := path.Ext(base)
	stem := strings.Trim(unsafeChars.ReplaceAllString(strings.TrimSuffix(base, e), "_"), "._")
	e = unsafeChars.ReplaceAllString(e, "")
	if e == "." {
		e = ""
	}
	if stem == "" {
		stem = uuid.Must(uuid.NewV4()).String()
	}
	return stem + e
}

func ext(name string) string {
	e := strings.TrimPrefix(path.Ext(name), ".")
	if e == "" {
		return "jpg"
	}
	return strings.ToLower(e)
}

// ProfileImagePath is users/{id}/profile/{name}.
func ProfileImagePath(userID, name string) string {
	return fmt.Sprintf("users/%s/profile/%s", userID, CleanName(name))
}

// BannerImagePath is users/{id}/uploads/banner_{unix millis}.{ext}.
func BannerImagePath(userID, name string, now time.Time) string {
	return fmt.Sprintf("users/%s/uploads/banner_%d.%s", userID, now.UnixMilli(), ext(name))
}

// PostImagePath is posts/{id}/{unix millis}_{name}.
func PostImagePath(postID, name string, now time.Time) string {
	return fmt.Sprintf("posts/%s/%d_%s", postID, now.UnixMilli(), CleanName(name))
}

// PostImagePrefix is posts/{id}/, the folder holding a post's images.
func PostImagePrefix(postID string) string {
	return fmt.Sprintf("posts/%s/", postID)
}

// ProgramImagePath is programs/{id}/images/{name}.
func ProgramImagePath(programID, name string) string {
	return fmt.Sprintf("programs/%s/images/%s", programID, CleanName(name))
}

// MediaPath is media/{name}, used by the bulk media upload tool.
func MediaPath(name string) string {
	return "media/" + CleanName(name)
}

// ValidPath rejects empty paths, parent references and absolute paths.
func ValidPath(objectPath string) bool {
	if objectPath == "" || strings.HasPrefix(objectPath, "/") {
		return false
	}
	for _, seg := range strings.Split(objectPath, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}
