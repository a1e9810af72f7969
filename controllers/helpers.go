package controllers

import (
	"mime/multipart"
	"strconv"

	"orbit-api/services"
	"orbit-api/storage"

	"github.com/gin-gonic/gin"
)

// Blobs is the process-wide blob store, set once from main before routes are
// served.
var Blobs storage.Store

func getUserIDFromContext(c *gin.Context) (int, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

func parseIntOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// filesFromForm adapts multipart uploads into service upload descriptors.
// Readers are opened lazily-closed by the caller via the returned closers.
func filesFromForm(fileHeaders []*multipart.FileHeader) ([]services.UploadFile, []func() error, error) {
	files := make([]services.UploadFile, 0, len(fileHeaders))
	closers := make([]func() error, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			for _, close := range closers {
				close()
			}
			return nil, nil, err
		}
		closers = append(closers, f.Close)
		files = append(files, services.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Reader:      f,
		})
	}
	return files, closers, nil
}

func closeAll(closers []func() error) {
	for _, close := range closers {
		close()
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
