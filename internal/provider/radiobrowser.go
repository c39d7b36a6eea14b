package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/mkts/navirad/internal/errors"
	"github.com/mkts/navirad/internal/logger"
	"github.com/mkts/navirad/internal/model"
)

// radioBrowserStation represents the Radio-Browser JSON payload for one station.
// Only the fields this tool consumes are mapped.
type radioBrowserStation struct {
	StationUUID string `json:"stationuuid"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	URLResolved string `json:"url_resolved"`
	Homepage    string `json:"homepage"`
	Country     string `json:"country"`
	Tags        string `json:"tags"`
	Bitrate     int    `json:"bitrate"`
	Votes       int    `json:"votes"`
}

// radioBrowserClient implements SearchProvider against the Radio-Browser API
type radioBrowserClient struct {
	baseURL    string
	topLimit   int
	httpClient *http.Client
}

// NewRadioBrowserClient creates a SearchProvider backed by a Radio-Browser mirror.
// topLimit caps how many stations a top-voted browse fetches.
func NewRadioBrowserClient(baseURL string, topLimit int) SearchProvider {
	return &radioBrowserClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		topLimit: topLimit,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Search queries the directory and normalizes the response
func (c *radioBrowserClient) Search(ctx context.Context, kind SearchKind, query string) ([]model.Station, error) {
	endpoint, err := c.endpointFor(kind, query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to build directory request")
	}
	req.Header.Set("User-Agent", "navirad/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeProviderUnavailable, "radio directory is unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.CodeProviderUnavailable,
			fmt.Sprintf("radio directory returned status %d", resp.StatusCode))
	}

	var payload []radioBrowserStation
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeProviderUnavailable, "failed to decode directory response")
	}

	return normalizeStations(payload), nil
}

// endpointFor maps a search kind to its Radio-Browser endpoint
func (c *radioBrowserClient) endpointFor(kind SearchKind, query string) (string, error) {
	switch kind {
	case KindName, KindTag, KindCountry:
		if strings.TrimSpace(query) == "" {
			return "", apperrors.New(apperrors.CodeInvalidArg, "search query must not be empty")
		}
	case KindTopVoted:
		// query ignored
	default:
		return "", apperrors.New(apperrors.CodeInvalidArg, fmt.Sprintf("unknown search kind: %s", kind))
	}

	switch kind {
	case KindName:
		return fmt.Sprintf("%s/stations/byname/%s", c.baseURL, url.PathEscape(query)), nil
	case KindTag:
		return fmt.Sprintf("%s/stations/bytag/%s", c.baseURL, url.PathEscape(query)), nil
	case KindCountry:
		return fmt.Sprintf("%s/stations/bycountry/%s", c.baseURL, url.PathEscape(query)), nil
	default:
		return fmt.Sprintf("%s/stations/topvote/%d", c.baseURL, c.topLimit), nil
	}
}

// normalizeStations converts the loosely-typed directory payload into Station
// records. Stations without any stream URL are dropped here so the browser and
// repository never see a record missing its identity key.
func normalizeStations(payload []radioBrowserStation) []model.Station {
	stations := make([]model.Station, 0, len(payload))
	dropped := 0

	for _, raw := range payload {
		streamURL := raw.URLResolved
		if streamURL == "" {
			streamURL = raw.URL
		}
		if streamURL == "" {
			dropped++
			continue
		}

		name := strings.TrimSpace(raw.Name)
		if name == "" {
			name = "Unknown"
		}

		bitrate := raw.Bitrate
		if bitrate <= 0 {
			bitrate = model.BitrateUnknown
		}

		stations = append(stations, model.Station{
			StationID:   raw.StationUUID,
			Name:        name,
			StreamURL:   streamURL,
			Homepage:    raw.Homepage,
			Country:     raw.Country,
			Tags:        splitTags(raw.Tags),
			BitrateKbps: bitrate,
			Votes:       raw.Votes,
		})
	}

	if dropped > 0 {
		logger.WithComponent("provider").Warnf("dropped %d station(s) without a stream URL", dropped)
	}

	return stations
}

// splitTags turns the directory's comma-separated tag string into a list
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}
