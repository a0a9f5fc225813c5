package memory_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbridge/docbridge/pkg/docbridge/storage"
	"github.com/docbridge/docbridge/pkg/docbridge/storage/memory"
)

func TestMemoryGateway_BasicOps(t *testing.T) {
	gw := memory.New("")
	ctx := context.Background()

	exists, err := gw.Exists(ctx, "report.docx")
	require.NoError(t, err)
	assert.False(t, exists)

	url, err := gw.Put(ctx, "report.docx", strings.NewReader("hello"), "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, "http://memory.local/store/report.docx", url)

	exists, err = gw.Exists(ctx, "report.docx")
	require.NoError(t, err)
	assert.True(t, exists)

	data, ok := gw.Object("report.docx")
	require.True(t, ok)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, gw.Delete(ctx, "report.docx"))
	require.ErrorIs(t, gw.Delete(ctx, "report.docx"), storage.ErrObjectNotFound)
}

func TestMemoryGateway_PresignedURL(t *testing.T) {
	gw := memory.New("")
	ctx := context.Background()

	_, err := gw.PresignedURL(ctx, "missing.docx", time.Hour)
	require.ErrorIs(t, err, storage.ErrObjectNotFound)

	gw.Seed("report.docx", []byte("x"))
	url, err := gw.PresignedURL(ctx, "report.docx", 30*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "X-Amz-Expires=1800")
}
