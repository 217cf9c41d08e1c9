// Package attachments turns uploaded files into incident attachments.
package attachments

import (
	"context"
	"encoding/base64"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"

	"golang.org/x/sync/errgroup"

	"dentalClinicManagement/models"
)

// maxParallelReads bounds concurrent file reads for one selection.
const maxParallelReads = 8

// Read loads every named file from fsys concurrently and returns one attachment
// per file, in the order of names. Nothing is returned unless all reads succeed.
func Read(ctx context.Context, fsys fs.FS, names []string) ([]models.Attachment, error) {
	out := make([]models.Attachment, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return fmt.Errorf("read attachment %s: %w", name, err)
			}
			out[i] = models.Attachment{Name: path.Base(name), URL: DataURL(name, data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// DataURL encodes data as a base64 data URL. The media type comes from the file
// extension, falling back to content sniffing.
func DataURL(name string, data []byte) string {
	mt := mime.TypeByExtension(path.Ext(name))
	if mt == "" {
		mt = http.DetectContentType(data)
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Append returns existing followed by added, leaving both inputs unchanged.
func Append(existing, added []models.Attachment) []models.Attachment {
	out := make([]models.Attachment, 0, len(existing)+len(added))
	out = append(out, existing...)
	return append(out, added...)
}

// Remove returns files without the element at index. An out-of-range index
// returns an unchanged copy.
func Remove(files []models.Attachment, index int) []models.Attachment {
	out := make([]models.Attachment, 0, len(files))
	for i, f := range files {
		if i != index {
			out = append(out, f)
		}
	}
	return out
}
