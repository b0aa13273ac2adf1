package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/karupanerura/exprsuite/internal/defaults"
	"github.com/karupanerura/exprsuite/internal/expression"
	"github.com/karupanerura/exprsuite/internal/types"
)

type evaluation struct {
	mu sync.RWMutex

	Name       string         `json:"name"`
	Expression string         `json:"expression"`
	Symbols    map[string]any `json:"symbols,omitempty"`
	StartTime  time.Time      `json:"startTime"`
	EndTime    time.Time      `json:"endTime,omitempty"`
	State      string         `json:"state"`
	Value      any            `json:"value,omitempty"`
	Tree       string         `json:"tree,omitempty"`
	Error      any            `json:"error,omitempty"`
}

type evaluateRequest struct {
	Expression string         `json:"expression"`
	Symbols    map[string]any `json:"symbols"`
}

type httpHandler struct {
	idBase      uint64
	evaluations sync.Map
}

func NewHTTPHandler() http.Handler {
	return &httpHandler{}
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/v1/evaluate":
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.createEvaluation(w, r)

	case "/v1/evaluations":
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.listEvaluations(w, r)

	default:
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}

func (h *httpHandler) createEvaluation(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var req evaluateRequest
	if err := decoder.Decode(&req); err != nil {
		log.Printf("failed to decode request body: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if req.Expression == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	st := types.NewSymbolTable()
	st.Parent = defaults.DefaultSymbolTable
	for name, value := range req.Symbols {
		v, err := types.NormalizeNumber(value)
		if err != nil {
			log.Printf("failed to normalize symbol %q: %v", name, err)
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		st.Add(name, v)
	}

	id := fmt.Sprintf("00000000-0000-0000-0000-%012x", atomic.AddUint64(&h.idBase, 1))
	ev := &evaluation{
		Name:       r.URL.Path + "/" + id,
		Expression: req.Expression,
		Symbols:    req.Symbols,
		StartTime:  time.Now().UTC(),
		State:      "ACTIVE",
	}
	h.evaluations.Store(id, ev)

	node, err := expression.Parse(req.Expression)
	var value any
	if err == nil {
		evaluator := expression.Evaluator{SymbolTable: st}
		value, err = evaluator.Evaluate(node)
	}

	if err != nil {
		h.finishEvaluation(ev, func(ev *evaluation) {
			ev.State = "FAILED"
			ev.Error = describeError(err)
		})

		var exception types.Exception
		if errors.As(err, &exception) {
			resJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":   exception.Error(),
				"details": exception.Exception(),
			})
			return
		}
		log.Printf("failed to evaluate expression: %v", err)
		resJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	tree := expression.Render(node)
	h.finishEvaluation(ev, func(ev *evaluation) {
		ev.State = "SUCCEEDED"
		ev.Value = value
		ev.Tree = tree
	})
	resJSON(w, http.StatusOK, map[string]any{
		"value": value,
		"tree":  tree,
	})
}

func (h *httpHandler) finishEvaluation(ev *evaluation, update func(*evaluation)) {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	ev.EndTime = time.Now().UTC()
	update(ev)
}

func describeError(err error) any {
	var exception types.Exception
	if errors.As(err, &exception) {
		return exception.Exception()
	}
	return err.Error()
}

func (h *httpHandler) listEvaluations(w http.ResponseWriter, r *http.Request) {
	results := []*evaluation{}
	h.evaluations.Range(func(key, value any) bool {
		results = append(results, value.(*evaluation))
		return true
	})
	for _, ev := range results {
		ev.mu.RLock()
	}
	defer func() {
		for _, ev := range results {
			ev.mu.RUnlock()
		}
	}()
	sort.Slice(results, func(i, j int) bool {
		return results[i].StartTime.Before(results[j].StartTime)
	})

	resJSON(w, http.StatusOK, map[string][]*evaluation{"evaluations": results})
}

func resJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)+1))
	w.WriteHeader(status)

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
