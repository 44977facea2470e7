package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, kv *memKV, opts ...ServerOption) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(NewServer(testBoard(kv), opts...))
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL+Path, srv.Client())
}

func TestServerClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, client := newTestServer(t, newMemKV())

	got, err := client.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Entries() on new server = %v, expected empty", got)
	}

	if _, err := client.Record(ctx, "ann", 50); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if _, err := client.Record(ctx, "Bob", 80); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	got, err = client.Rename(ctx, "ann", "Bob")
	if err != nil {
		t.Fatalf("Rename() failed: %v", err)
	}

	want := []Entry{{Name: "Bob", Score: 80, At: 1000}}
	if !slices.Equal(got, want) {
		t.Errorf("Rename() = %v, expected %v", got, want)
	}

	got, _ = client.Entries(ctx)
	if !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, expected %v", got, want)
	}
}

func TestServerStatusCodes(t *testing.T) {
	kv := newMemKV()
	srv, _ := newTestServer(t, kv)

	tests := []struct {
		name   string
		method string
		body   string
		want   int
		errMsg string
	}{
		{"get", http.MethodGet, "", http.StatusOK, ""},
		{"record", http.MethodPost, `{"type":"record","name":"ann","score":12.9}`, http.StatusOK, ""},
		{"unknown type", http.MethodPost, `{"type":"delete"}`, http.StatusBadRequest, "Unknown type"},
		{"empty body", http.MethodPost, ``, http.StatusBadRequest, "Unknown type"},
		{"malformed", http.MethodPost, `{"type":`, http.StatusBadRequest, "Malformed body"},
		{"put", http.MethodPut, `{}`, http.StatusMethodNotAllowed, "Method not allowed"},
		{"delete", http.MethodDelete, ``, http.StatusMethodNotAllowed, "Method not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, srv.URL+Path, strings.NewReader(tt.body))
			resp, err := srv.Client().Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, expected %d", resp.StatusCode, tt.want)
			}
			if tt.errMsg == "" {
				return
			}
			var body errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Error != tt.errMsg {
				t.Errorf("error = %q, expected %q", body.Error, tt.errMsg)
			}
		})
	}

	stored, _, _ := kv.Get(context.Background(), "test")
	if !strings.Contains(stored, `"score":12`) {
		t.Errorf("stored board = %s, expected floored score 12", stored)
	}
}

func TestServerStorageFailure(t *testing.T) {
	kv := newMemKV()
	_, client := newTestServer(t, kv)
	kv.setBroken(true)

	_, err := client.Record(context.Background(), "ann", 5)
	var status *StatusError
	if !errors.As(err, &status) || status.Code != http.StatusServiceUnavailable {
		t.Fatalf("Record() error = %v, expected status 503", err)
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("StatusError should wrap ErrUnavailable")
	}
}

func TestServerRateLimit(t *testing.T) {
	_, client := newTestServer(t, newMemKV(), WithRateLimit(0.001, 2))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := client.Record(ctx, "ann", 5+i); err != nil {
			t.Fatalf("Record() #%d failed: %v", i, err)
		}
	}

	_, err := client.Record(ctx, "ann", 9)
	var status *StatusError
	if !errors.As(err, &status) || status.Code != http.StatusTooManyRequests {
		t.Errorf("Record() error = %v, expected status 429", err)
	}

	if _, err := client.Entries(ctx); err != nil {
		t.Errorf("GET should not be rate limited: %v", err)
	}
}

func TestServerRequestID(t *testing.T) {
	srv, _ := newTestServer(t, newMemKV())

	resp, err := srv.Client().Get(srv.URL + Path)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()

	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("response is missing X-Request-ID")
	}
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + Path
	srv.Close()

	_, err := NewClient(url, nil).Entries(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Entries() error = %v, expected ErrUnavailable", err)
	}
}
