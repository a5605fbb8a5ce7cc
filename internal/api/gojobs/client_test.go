package gojobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recruit-match/internal/errs"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, "test-key", 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client
}

func TestNewRequiresServiceKey(t *testing.T) {
	_, err := New("https://example.org", "  ", time.Second, zap.NewNop())
	if !errs.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestFetchListParsesAndNormalizes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/list" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("serviceKey") != "test-key" {
			t.Errorf("missing service key, query: %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("resultType") != "json" {
			t.Error("expected resultType=json")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"resultCode": 200,
			"resultMsg": "SUCCESS",
			"totalCount": 2,
			"result": [
				{"recrutPblntSn": 1001, "instNm": " 한국철도공사 ", "recrutPbancTtl": "전산직 채용", "ongoingYn": "Y"},
				{"recrutPblntSn": "1002", "instNm": "국민건강보험공단", "recrutPbancTtl": "행정직", "ongoingYn": "N"}
			]
		}`))
	})

	page, err := client.FetchList(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.TotalCount != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected page shape: %+v", page)
	}
	if page.Items[0].Institution != "한국철도공사" {
		t.Errorf("expected trimmed institution, got %q", page.Items[0].Institution)
	}
	if page.Items[1].PostingID != 1002 {
		t.Errorf("quoted id should decode, got %d", page.Items[1].PostingID)
	}
}

func TestFetchListUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("SERVICE ERROR"))
	})

	_, err := client.FetchList(context.Background(), 1, 100)
	if !errs.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestFetchListEmbeddedResultCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"resultCode": "401", "resultMsg": "SERVICE KEY IS NOT REGISTERED", "totalCount": 0, "result": []}`))
	})

	_, err := client.FetchList(context.Background(), 1, 100)
	if !errs.IsUpstream(err) {
		t.Fatalf("expected upstream error for embedded failure code, got %v", err)
	}
}

func TestFetchDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detail" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("sn") != "1001" {
			t.Errorf("expected sn=1001, got %q", r.URL.Query().Get("sn"))
		}

		w.Write([]byte(`{
			"resultCode": 200,
			"resultMsg": "SUCCESS",
			"result": {"recrutPblntSn": 1001, "recrutPbancTtl": "전산직 채용", "aplyQlfcCn": "관련 전공자"}
		}`))
	})

	rec, err := client.FetchDetail(context.Background(), 1001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec == nil || rec.Qualification != "관련 전공자" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestFetchDetailEmbeddedResultCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"resultCode": 500, "resultMsg": "INTERNAL ERROR", "result": null}`))
	})

	_, err := client.FetchDetail(context.Background(), 1)
	if !errs.IsUpstream(err) {
		t.Fatalf("expected upstream error for embedded failure code, got %v", err)
	}
}

func TestFetchDetailMissingRecord(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"resultCode": 200, "resultMsg": "SUCCESS", "result": null}`))
	})

	rec, err := client.FetchDetail(context.Background(), 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record for missing posting, got %+v", rec)
	}
}

func TestEncodedKeyPassthrough(t *testing.T) {
	preEncoded := &Client{serviceKey: "abc%2Bdef"}
	if got := preEncoded.encodedKey(); got != "abc%2Bdef" {
		t.Errorf("pre-encoded key must pass through, got %q", got)
	}

	plain := &Client{serviceKey: "abc+def"}
	if got := plain.encodedKey(); got != "abc%2Bdef" {
		t.Errorf("plain key must be escaped, got %q", got)
	}
}
