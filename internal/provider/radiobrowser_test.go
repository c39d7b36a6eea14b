package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/mkts/navirad/internal/errors"
	"github.com/mkts/navirad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadioBrowserClient_Search(t *testing.T) {
	tests := []struct {
		name         string
		kind         SearchKind
		query        string
		wantPath     string
		responseBody string
		want         []model.Station
	}{
		{
			name:     "search by name normalizes payload",
			kind:     KindName,
			query:    "jazz fm",
			wantPath: "/json/stations/byname/jazz%20fm",
			responseBody: `[
				{"stationuuid":"uuid-1","name":"Jazz FM","url":"http://old.example/a","url_resolved":"http://resolved.example/a","homepage":"http://jazz.example","country":"UK","tags":"jazz,smooth jazz","bitrate":128,"votes":42}
			]`,
			want: []model.Station{
				{
					StationID:   "uuid-1",
					Name:        "Jazz FM",
					StreamURL:   "http://resolved.example/a",
					Homepage:    "http://jazz.example",
					Country:     "UK",
					Tags:        []string{"jazz", "smooth jazz"},
					BitrateKbps: 128,
					Votes:       42,
				},
			},
		},
		{
			name:     "search by tag",
			kind:     KindTag,
			query:    "rock",
			wantPath: "/json/stations/bytag/rock",
			responseBody: `[
				{"name":"Rock One","url":"http://rock.example/1","tags":"rock","bitrate":0,"votes":-3}
			]`,
			want: []model.Station{
				{
					Name:        "Rock One",
					StreamURL:   "http://rock.example/1",
					Tags:        []string{"rock"},
					BitrateKbps: model.BitrateUnknown,
					Votes:       -3,
				},
			},
		},
		{
			name:     "search by country",
			kind:     KindCountry,
			query:    "Germany",
			wantPath: "/json/stations/bycountry/Germany",
			responseBody: `[
				{"name":"","url":"http://de.example/1","country":"Germany"}
			]`,
			want: []model.Station{
				{
					Name:        "Unknown",
					StreamURL:   "http://de.example/1",
					Country:     "Germany",
					BitrateKbps: model.BitrateUnknown,
				},
			},
		},
		{
			name:     "top voted ignores query",
			kind:     KindTopVoted,
			query:    "",
			wantPath: "/json/stations/topvote/50",
			responseBody: `[
				{"name":"Top Station","url":"http://top.example/1","votes":9001}
			]`,
			want: []model.Station{
				{
					Name:        "Top Station",
					StreamURL:   "http://top.example/1",
					BitrateKbps: model.BitrateUnknown,
					Votes:       9001,
				},
			},
		},
		{
			name:         "stations without stream URL are dropped",
			kind:         KindName,
			query:        "broken",
			wantPath:     "/json/stations/byname/broken",
			responseBody: `[{"name":"No URL"},{"name":"Has URL","url":"http://ok.example/1"}]`,
			want: []model.Station{
				{
					Name:        "Has URL",
					StreamURL:   "http://ok.example/1",
					BitrateKbps: model.BitrateUnknown,
				},
			},
		},
		{
			name:         "empty result is valid",
			kind:         SearchKind("name"),
			query:        "zzz-nonexistent-zzz",
			wantPath:     "/json/stations/byname/zzz-nonexistent-zzz",
			responseBody: `[]`,
			want:         []model.Station{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantPath, r.URL.EscapedPath())
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			client := NewRadioBrowserClient(server.URL+"/json", 50)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			got, err := client.Search(ctx, tt.kind, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRadioBrowserClient_Search_EmptyQuery(t *testing.T) {
	client := NewRadioBrowserClient("http://unused.example/json", 50)

	_, err := client.Search(context.Background(), KindName, "   ")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidArg))
}

func TestRadioBrowserClient_Search_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewRadioBrowserClient(server.URL+"/json", 50)

	_, err := client.Search(context.Background(), KindTag, "jazz")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeProviderUnavailable))
}

func TestRadioBrowserClient_Search_Unreachable(t *testing.T) {
	// Point at a closed port
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewRadioBrowserClient(server.URL+"/json", 50)

	_, err := client.Search(context.Background(), KindCountry, "UK")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeProviderUnavailable))
}

func TestRadioBrowserClient_Search_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"`))
	}))
	defer server.Close()

	client := NewRadioBrowserClient(server.URL+"/json", 50)

	_, err := client.Search(context.Background(), KindName, "jazz")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeProviderUnavailable))
}
