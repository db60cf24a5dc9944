package intel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volleyclip/clipper/internal/model"
)

func TestHTTPClient_CreateIndex(t *testing.T) {
	var gotBody createIndexRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/indexes", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"_id": "idx-123"})
	}))
	defer server.Close()

	client := newHTTPClientForTest(server.URL, nil)

	indexID, err := client.CreateIndex(context.Background(), "match_mp4_1700000000", DefaultModels())
	require.NoError(t, err)
	assert.Equal(t, "idx-123", indexID)
	assert.Equal(t, "match_mp4_1700000000", gotBody.IndexName)
	require.Len(t, gotBody.Models, 2)
	assert.Equal(t, "marengo3.0", gotBody.Models[0].Name)
}

func TestHTTPClient_RegisterAsset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/indexes/idx-123/assets", r.URL.Path)

		var body registerAssetRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "url", body.Method)
		assert.Equal(t, "https://store.example/match.mp4?sig=abc", body.URL)

		json.NewEncoder(w).Encode(map[string]string{"_id": "asset-456"})
	}))
	defer server.Close()

	client := newHTTPClientForTest(server.URL, nil)

	assetID, err := client.RegisterAsset(context.Background(), "idx-123", "https://store.example/match.mp4?sig=abc")
	require.NoError(t, err)
	assert.Equal(t, "asset-456", assetID)
}

func TestHTTPClient_GetAssetStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		want       *AssetStatus
		wantErr    bool
	}{
		{
			name:       "ready",
			statusCode: http.StatusOK,
			body:       `{"_id": "asset-456", "status": "ready"}`,
			want:       &AssetStatus{Status: "ready", ReadyID: "asset-456"},
		},
		{
			name:       "still indexing",
			statusCode: http.StatusOK,
			body:       `{"_id": "asset-456", "status": "indexing"}`,
			want:       &AssetStatus{Status: "indexing", ReadyID: "asset-456"},
		},
		{
			name:       "missing status field",
			statusCode: http.StatusOK,
			body:       `{"_id": "asset-456"}`,
			wantErr:    true,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			body:       `{"message": "boom"}`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/indexes/idx-123/indexed-assets/asset-456", r.URL.Path)
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newHTTPClientForTest(server.URL, nil)

			got, err := client.GetAssetStatus(context.Background(), "idx-123", "asset-456")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPClient_Query(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    []model.Segment
		wantErr bool
	}{
		{
			name: "two segments",
			data: `{"segments": [{"start": 10.5, "end": 15.0}, {"start": 31.0, "end": 42.5}]}`,
			want: []model.Segment{{Start: 10.5, End: 15.0}, {Start: 31.0, End: 42.5}},
		},
		{
			name: "zero matches is a valid outcome",
			data: `{"segments": []}`,
			want: []model.Segment{},
		},
		{
			name:    "malformed JSON propagates as error",
			data:    `{"segments": [{"start": 10.5`,
			wantErr: true,
		},
		{
			name:    "missing segments field propagates as error",
			data:    `{"matches": []}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/analyze", r.URL.Path)

				var body analyzeRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "asset-456", body.VideoID)
				assert.Equal(t, "all spikes by the blue team", body.Prompt)
				assert.Zero(t, body.Temperature)
				assert.Equal(t, "json_schema", body.ResponseFormat.Type)

				json.NewEncoder(w).Encode(map[string]string{"data": tt.data})
			}))
			defer server.Close()

			client := newHTTPClientForTest(server.URL, nil)

			got, err := client.Query(context.Background(), "asset-456", "all spikes by the blue team")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
