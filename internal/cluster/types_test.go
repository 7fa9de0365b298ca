package cluster

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRankInfo(t *testing.T) {
	rank := RankInfo{ID: 1, Addr: "http://localhost:8080"}

	data, err := json.Marshal(rank)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var jsonMap map[string]interface{}
	if err := json.Unmarshal(data, &jsonMap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if jsonMap["id"] != float64(1) {
		t.Errorf("expected id 1, got %v", jsonMap["id"])
	}
	if jsonMap["addr"] != "http://localhost:8080" {
		t.Errorf("expected addr, got %v", jsonMap["addr"])
	}

	var decoded RankInfo
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal into RankInfo: %v", err)
	}
	if decoded.ID != rank.ID || decoded.Addr != rank.Addr {
		t.Errorf("round trip mismatch: %+v vs %+v", decoded, rank)
	}
}

func TestRegisterRequest(t *testing.T) {
	req := RegisterRequest{Rank: RankInfo{ID: 2, Addr: "http://localhost:8081"}}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded RegisterRequest
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Rank.ID != req.Rank.ID || decoded.Rank.Addr != req.Rank.Addr {
		t.Errorf("expected %+v, got %+v", req.Rank, decoded.Rank)
	}
}

func TestBroadcastRequest(t *testing.T) {
	payload := json.RawMessage(`{"op":"start_run","run_id":"r1"}`)
	req := BroadcastRequest{Path: "/run", Payload: payload}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded BroadcastRequest
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Path != req.Path {
		t.Errorf("expected path %s, got %s", req.Path, decoded.Path)
	}
	if !bytes.Equal(decoded.Payload, req.Payload) {
		t.Errorf("payload mismatch: expected %s, got %s", req.Payload, decoded.Payload)
	}
}

func TestPostJSON(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse int
		serverBody     string
		requestBody    interface{}
		responseBody   interface{}
		expectError    bool
		contextTimeout bool
	}{
		{
			name:           "successful POST with response",
			serverResponse: http.StatusOK,
			serverBody:     `{"status":"ok"}`,
			requestBody:    map[string]string{"test": "data"},
			responseBody:   &map[string]string{},
		},
		{
			name:           "successful POST without response body",
			serverResponse: http.StatusNoContent,
			requestBody:    map[string]string{"test": "data"},
		},
		{
			name:           "server error response",
			serverResponse: http.StatusInternalServerError,
			serverBody:     `{"error":"internal error"}`,
			requestBody:    map[string]string{"test": "data"},
			expectError:    true,
		},
		{
			name:           "bad request",
			serverResponse: http.StatusBadRequest,
			requestBody:    map[string]string{"test": "data"},
			expectError:    true,
		},
		{
			name:           "context timeout",
			serverResponse: http.StatusOK,
			serverBody:     `{"status":"ok"}`,
			requestBody:    map[string]string{"test": "data"},
			expectError:    true,
			contextTimeout: true,
		},
		{
			name:           "unmarshalable request body",
			serverResponse: http.StatusOK,
			requestBody:    make(chan int),
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if tt.contextTimeout {
					time.Sleep(100 * time.Millisecond)
				}
				w.WriteHeader(tt.serverResponse)
				if tt.serverBody != "" {
					w.Write([]byte(tt.serverBody))
				}
			}))
			defer server.Close()

			ctx := context.Background()
			if tt.contextTimeout {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, 1*time.Millisecond)
				defer cancel()
			}

			err := PostJSON(ctx, server.URL, tt.requestBody, tt.responseBody)
			if tt.expectError && err == nil {
				t.Errorf("expected error, got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPostJSONInvalidURL(t *testing.T) {
	ctx := context.Background()
	if err := PostJSON(ctx, "://invalid-url", map[string]string{"test": "data"}, nil); err == nil {
		t.Error("expected error for invalid URL")
	}
	if err := PostJSON(ctx, "http://localhost:99999", map[string]string{"test": "data"}, nil); err == nil {
		t.Error("expected error for unreachable server")
	}
}

func TestGetJSON(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse int
		serverBody     string
		expectError    bool
		contextTimeout bool
	}{
		{name: "successful GET", serverResponse: http.StatusOK, serverBody: `{"data":"test","value":123}`},
		{name: "not found error", serverResponse: http.StatusNotFound, expectError: true},
		{name: "server error", serverResponse: http.StatusInternalServerError, expectError: true},
		{name: "context timeout", serverResponse: http.StatusOK, serverBody: `{"data":"test"}`, expectError: true, contextTimeout: true},
		{name: "invalid JSON response", serverResponse: http.StatusOK, serverBody: `{invalid json}`, expectError: true},
		{name: "redirect response", serverResponse: http.StatusMovedPermanently, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET, got %s", r.Method)
				}
				if tt.contextTimeout {
					time.Sleep(100 * time.Millisecond)
				}
				w.WriteHeader(tt.serverResponse)
				if tt.serverBody != "" {
					w.Write([]byte(tt.serverBody))
				}
			}))
			defer server.Close()

			ctx := context.Background()
			if tt.contextTimeout {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, 1*time.Millisecond)
				defer cancel()
			}

			var out map[string]interface{}
			err := GetJSON(ctx, server.URL, &out)
			if tt.expectError && err == nil {
				t.Errorf("expected error, got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestGetJSONInvalidURL(t *testing.T) {
	ctx := context.Background()
	var result map[string]interface{}
	if err := GetJSON(ctx, "://invalid-url", &result); err == nil {
		t.Error("expected error for invalid URL")
	}
	if err := GetJSON(ctx, "http://localhost:99999", &result); err == nil {
		t.Error("expected error for unreachable server")
	}
}

func TestHTTPClientTimeout(t *testing.T) {
	if httpClient.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", httpClient.Timeout)
	}
}
