package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Cloudinary stores objects as Cloudinary assets. The object path without
// its extension is the public id, so folders mirror the path.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudinaryURL string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary configuration: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld}, nil
}

func publicID(objectPath string) string {
	return strings.TrimSuffix(objectPath, path.Ext(objectPath))
}

func (c *Cloudinary) Upload(ctx context.Context, objectPath string, r io.Reader) (string, error) {
	if !ValidPath(objectPath) {
		return "", fmt.Errorf("upload: invalid object path %q", objectPath)
	}
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:       publicID(objectPath),
		Transformation: "q_auto",
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("upload %s: %s", objectPath, res.Error.Message)
	}
	return res.SecureURL, nil
}

func (c *Cloudinary) Delete(ctx context.Context, objectPath string) error {
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID(objectPath)})
	if err != nil {
		return fmt.Errorf("delete %s: %w", objectPath, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("delete %s: %s", objectPath, res.Error.Message)
	}
	if res.Result == "not found" {
		return ErrNotFound
	}
	return nil
}

func (c *Cloudinary) List(ctx context.Context, prefix string) ([]Object, error) {
	res, err := c.cld.Admin.Assets(ctx, admin.AssetsParams{
		AssetType:    api.Image,
		DeliveryType: string(api.Upload),
		Prefix:       prefix,
		MaxResults:   500,
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("list %s: %s", prefix, res.Error.Message)
	}
	objects := make([]Object, 0, len(res.Assets))
	for _, a := range res.Assets {
		objects = append(objects, Object{
			Path: a.PublicID + "." + a.Format,
			URL:  a.SecureURL,
			Size: int64(a.Bytes),
		})
	}
	return objects, nil
}

func (c *Cloudinary) URL(objectPath string) (string, error) {
	if !ValidPath(objectPath) {
		return "", fmt.Errorf("url: invalid object path %q", objectPath)
	}
	img, err := c.cld.Image(publicID(objectPath))
	if err != nil {
		return "", err
	}
	return img.String()
}
