package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
	"github.com/oksasatya/employee-hierarchy-api/internal/infrastructure/database"
)

type esCall struct {
	method, path string
	body         map[string]any
}

type fakeES struct {
	mu    sync.Mutex
	calls []esCall
	hits  []string
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if b, _ := io.ReadAll(r.Body); len(b) > 0 {
		_ = json.Unmarshal(b, &body)
	}
	f.mu.Lock()
	f.calls = append(f.calls, esCall{method: r.Method, path: r.URL.Path, body: body})
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/_search"):
		hits := make([]map[string]any, 0, len(f.hits))
		for _, id := range f.hits {
			hits = append(hits, map[string]any{"_id": id})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"hits": map[string]any{"hits": hits}})
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	default:
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}
}

func newIndex(t *testing.T, fake *fakeES) *EmployeeIndex {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewEmployeeIndex(es, "employees", logger)
}

func TestEmployeeIndex_AfterCommit(t *testing.T) {
	fake := &fakeES{}
	idx := newIndex(t, fake)
	added := entity.NewEmployee("Ada", "Lovelace", "ada@x.io", true, nil)
	removed := entity.NewEmployee("Bob", "Gone", "bob@x.io", false, nil)

	idx.AfterCommit(context.Background(), []database.Change{
		{Op: database.OpAdded, Entity: added},
		{Op: database.OpRemoved, Entity: removed},
	})

	require.Len(t, fake.calls, 2)
	assert.Equal(t, http.MethodPut, fake.calls[0].method)
	assert.Equal(t, "/employees/_doc/"+added.ID.String(), fake.calls[0].path)
	assert.Equal(t, "Ada Lovelace", fake.calls[0].body["fullName"])
	assert.Equal(t, http.MethodDelete, fake.calls[1].method)
	assert.Equal(t, "/employees/_doc/"+removed.ID.String(), fake.calls[1].path)
}

func TestEmployeeIndex_Delete404IsOK(t *testing.T) {
	idx := newIndex(t, &fakeES{})
	assert.NoError(t, idx.Delete(context.Background(), uuid.New()))
}

func TestEmployeeIndex_SearchEmployees(t *testing.T) {
	id := uuid.New()
	fake := &fakeES{hits: []string{id.String(), "not-a-uuid"}}
	idx := newIndex(t, fake)

	ids, err := idx.SearchEmployees(context.Background(), "ada", 500)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, ids)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, "/employees/_search", fake.calls[0].path)
	assert.EqualValues(t, 10, fake.calls[0].body["size"], "out of range sizes fall back to 10")
	mm := fake.calls[0].body["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "ada", mm["query"])
}
