package imagekit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ak-shop/api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(&config.ImageKitConfig{
		PublicKey:  "public",
		PrivateKey: "private",
		Folder:     "media-test",
	})
	client.UploadURL = srv.URL
	client.APIURL = srv.URL
	return client
}

func TestUpload(t *testing.T) {
	t.Run("successful upload", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			user, _, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "private", user)

			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "a.png", r.FormValue("fileName"))
			assert.Equal(t, "media-test", r.FormValue("folder"))

			require.NoError(t, json.NewEncoder(w).Encode(uploadResponse{
				FileID: "file-123",
				URL:    "https://ik.example.com/a.png",
			}))
		})

		fileID, url, err := client.Upload(context.Background(), "a.png", []byte("content"))

		require.NoError(t, err)
		assert.Equal(t, "file-123", fileID)
		assert.Equal(t, "https://ik.example.com/a.png", url)
	})

	t.Run("rejected upload", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		_, _, err := client.Upload(context.Background(), "a.png", []byte("content"))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})
}

func TestDelete(t *testing.T) {
	t.Run("successful delete", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/files/file-123", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})

		assert.NoError(t, client.Delete(context.Background(), "file-123"))
	})

	t.Run("unknown file", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		err := client.Delete(context.Background(), "missing")
		assert.Error(t, err)
	})
}
