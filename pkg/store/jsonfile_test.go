package store

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/voidshard/secretary/pkg/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	dir, err := ioutil.TempDir("", "secretary")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "out.json")
	jf := NewJSONFile(path)

	err = jf.Write(context.Background(), []domain.Transaction{
		{Name: "1", Amount: decimal.RequireFromString("1.50"), Date: "2026-10-01"},
		{Name: "2", Amount: decimal.NewFromInt(-3), Date: "2026-10-02", Category: []string{"Shops"}},
	})
	require.Nil(t, err)

	data, err := ioutil.ReadFile(path)
	require.Nil(t, err)

	back := []domain.Transaction{}
	require.Nil(t, json.Unmarshal(data, &back))
	require.Len(t, back, 2)
	assert.Equal(t, "1.50", back[0].Amount.StringFixed(2))
	assert.Equal(t, []string{"Shops"}, back[1].Category)
}

func TestOpen(t *testing.T) {
	s, err := Open("jsonfile:/tmp/x.json", zerolog.Nop())
	require.Nil(t, err)
	assert.IsType(t, &JSONFile{}, s)

	s, err = Open("es8:http://localhost:9200", zerolog.Nop())
	require.Nil(t, err)
	assert.IsType(t, &ElasticsearchV8{}, s)

	for _, bad := range []string{"", "out.json", "jsonfile:", "s3:bucket"} {
		_, err = Open(bad, zerolog.Nop())
		assert.NotNil(t, err, bad)
	}
}

func TestDocumentIDs(t *testing.T) {
	coffee := domain.Transaction{Name: "coffee", Amount: decimal.NewFromInt(3), Date: "2026-10-01"}

	ids := documentIDs([]domain.Transaction{coffee, coffee, {Name: "tea", Amount: decimal.NewFromInt(3), Date: "2026-10-01"}})

	assert.NotEqual(t, ids[0], ids[1])
	assert.NotEqual(t, ids[1], ids[2])
	assert.Equal(t, ids, documentIDs([]domain.Transaction{coffee, coffee, {Name: "tea", Amount: decimal.NewFromInt(3), Date: "2026-10-01"}}))
}
