package storage

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArtifactKey(t *testing.T) {
	at := time.Date(2026, 5, 9, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "generated/2026/05/09/abc.html", ArtifactKey("abc", "html", at))
	assert.Equal(t, "generated/2026/05/09/abc.py", ArtifactKey("abc", "python", at))
	assert.Equal(t, "generated/2026/05/09/abc.txt", ArtifactKey("abc", "unknown", at))
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "text/html; charset=utf-8", ContentTypeFor("html"))
	assert.Equal(t, "text/plain; charset=utf-8", ContentTypeFor("python"))
}

func TestObjectURL(t *testing.T) {
	u, _ := url.Parse("https://minio.local:9000")
	assert.Equal(t, "https://minio.local:9000/code/generated/a.go", ObjectURL(u, "code", "generated/a.go"))
}
