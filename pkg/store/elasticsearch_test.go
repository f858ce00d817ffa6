package store

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/voidshard/secretary/pkg/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeES accepts index creation and bulk requests, keeping the documents.
type fakeES struct {
	lock    sync.Mutex
	created bool
	docs    []map[string]interface{}
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.lock.Lock()
	defer f.lock.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPut && r.URL.Path == "/"+esIndex:
		f.created = true
		w.Write([]byte(`{"acknowledged":true}`))
	case strings.HasSuffix(r.URL.Path, "/_bulk"):
		items := []string{}
		scanner := bufio.NewScanner(r.Body)
		for line := 0; scanner.Scan(); line++ {
			if line%2 == 0 {
				continue // action line
			}
			doc := map[string]interface{}{}
			json.Unmarshal(scanner.Bytes(), &doc)
			f.docs = append(f.docs, doc)
			items = append(items, fmt.Sprintf(`{"index":{"_index":"%s","_id":"%d","status":201}}`, esIndex, len(f.docs)))
		}
		w.Write([]byte(`{"took":1,"errors":false,"items":[` + strings.Join(items, ",") + `]}`))
	default:
		w.Write([]byte(`{}`))
	}
}

func TestElasticsearchWrite(t *testing.T) {
	fake := &fakeES{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	es := NewElasticsearchV8(zerolog.Nop(), srv.URL)

	err := es.Write(context.Background(), []domain.Transaction{
		{Name: "coffee", Amount: decimal.RequireFromString("3.25"), Date: "2026-10-01"},
		{Name: "rent", Amount: decimal.NewFromInt(1200), Date: "2026-10-01", Category: []string{"Payment"}},
	})
	require.Nil(t, err)

	fake.lock.Lock()
	defer fake.lock.Unlock()

	assert.True(t, fake.created)
	require.Len(t, fake.docs, 2)
	assert.Equal(t, 3.25, fake.docs[0]["amount"])
	assert.Equal(t, float64(1200), fake.docs[1]["amount"])
}

func TestElasticsearchWriteCancelledReturns(t *testing.T) {
	srv := httptest.NewServer(&fakeES{})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		NewElasticsearchV8(zerolog.Nop(), srv.URL).Write(ctx, []domain.Transaction{
			{Name: "coffee", Amount: decimal.NewFromInt(3), Date: "2026-10-01"},
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("write hung on a cancelled context")
	}
}
