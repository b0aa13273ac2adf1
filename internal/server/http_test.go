package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/karupanerura/exprsuite/internal/server"
)

func postJSON(t *testing.T, ts *httptest.Server, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	res, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	var decoded map[string]any
	if strings.HasPrefix(res.Header.Get("Content-Type"), "application/json") {
		decoder := json.NewDecoder(res.Body)
		decoder.UseNumber()
		if err := decoder.Decode(&decoded); err != nil {
			t.Fatal(err)
		}
	}
	return res, decoded
}

func TestEvaluateEndpoint(t *testing.T) {
	ts := httptest.NewServer(server.NewHTTPHandler())
	defer ts.Close()

	res, body := postJSON(t, ts, "/v1/evaluate", `{"expression": "3 + 5 * 2"}`)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 but got %d: %+v", res.StatusCode, body)
	}
	if v := body["value"]; v != json.Number("13") {
		t.Errorf("expected value 13 but got %v (%T)", v, v)
	}
	if tree, _ := body["tree"].(string); !strings.Contains(tree, "BinaryOp(+) = 13") {
		t.Errorf("expected a decorated tree but got %q", tree)
	}
}

func TestEvaluateEndpointWithSymbols(t *testing.T) {
	ts := httptest.NewServer(server.NewHTTPHandler())
	defer ts.Close()

	res, body := postJSON(t, ts, "/v1/evaluate", `{"expression": "a / b + 10", "symbols": {"a": 20, "b": 4}}`)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 but got %d: %+v", res.StatusCode, body)
	}
	if v := body["value"]; v != json.Number("15") {
		t.Errorf("expected value 15 but got %v (%T)", v, v)
	}
}

func TestEvaluateEndpointTaggedErrors(t *testing.T) {
	ts := httptest.NewServer(server.NewHTTPHandler())
	defer ts.Close()

	for _, tt := range []struct {
		name string
		body string
		tag  string
	}{
		{name: "undefined identifier", body: `{"expression": "z + 1"}`, tag: "UndefinedIdentifier"},
		{name: "division by zero", body: `{"expression": "1 / 0"}`, tag: "DivisionByZero"},
		{name: "lex error", body: `{"expression": "3 & 2"}`, tag: "LexError"},
		{name: "parse error", body: `{"expression": "3 +"}`, tag: "ParseError"},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			res, body := postJSON(t, ts, "/v1/evaluate", tt.body)
			if res.StatusCode != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422 but got %d: %+v", res.StatusCode, body)
			}

			details, _ := body["details"].(map[string]any)
			tags, _ := details["tags"].([]any)
			found := false
			for _, v := range tags {
				if v == tt.tag {
					found = true
				}
			}
			if !found {
				t.Errorf("expected tag %s in %v", tt.tag, tags)
			}
		})
	}
}

func TestEvaluateEndpointBadRequest(t *testing.T) {
	ts := httptest.NewServer(server.NewHTTPHandler())
	defer ts.Close()

	for _, tt := range []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{`},
		{name: "missing expression", body: `{}`},
		{name: "non-numeric symbol", body: `{"expression": "x", "symbols": {"x": "nope"}}`},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			res, _ := postJSON(t, ts, "/v1/evaluate", tt.body)
			if res.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400 but got %d", res.StatusCode)
			}
		})
	}
}

func TestListEvaluations(t *testing.T) {
	ts := httptest.NewServer(server.NewHTTPHandler())
	defer ts.Close()

	if res, _ := postJSON(t, ts, "/v1/evaluate", `{"expression": "1 + 1"}`); res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 but got %d", res.StatusCode)
	}
	if res, _ := postJSON(t, ts, "/v1/evaluate", `{"expression": "z"}`); res.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 but got %d", res.StatusCode)
	}

	res, err := http.Get(ts.URL + "/v1/evaluations")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 but got %d", res.StatusCode)
	}

	var body map[string][]map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}

	evaluations := body["evaluations"]
	if len(evaluations) != 2 {
		t.Fatalf("expected 2 evaluations but got %d", len(evaluations))
	}
	if state, _ := evaluations[0]["state"].(string); state != "SUCCEEDED" {
		t.Errorf("expected SUCCEEDED but got %q", state)
	}
	if state, _ := evaluations[1]["state"].(string); state != "FAILED" {
		t.Errorf("expected FAILED but got %q", state)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := httptest.NewServer(server.NewHTTPHandler())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/evaluate")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 but got %d", res.StatusCode)
	}
}

func TestNotFound(t *testing.T) {
	ts := httptest.NewServer(server.NewHTTPHandler())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/nope")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 but got %d", res.StatusCode)
	}
}
