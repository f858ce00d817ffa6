package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/voidshard/secretary/pkg/crypto"
	"github.com/voidshard/secretary/pkg/domain"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/rs/zerolog"
)

// from https://github.com/elastic/go-elasticsearch/blob/master/_examples/bulk/indexer.go

const (
	esIndex = "secretary-transactions"
	esFlush = 2048

	envEsAddr = "ELASTICSEARCH_SERVICE_HOST"
	envEsPort = "ELASTICSEARCH_SERVICE_PORT"
)

type ElasticsearchV8 struct {
	addresses []string
	log       zerolog.Logger
}

func NewElasticsearchV8(log zerolog.Logger, urls ...string) Store {
	if len(urls) == 0 {
		address := os.Getenv(envEsAddr)
		port := os.Getenv(envEsPort)
		if port == "" {
			port = "9200" // default port
		}
		if address == "" {
			address = "localhost" // default address
		}
		urls = []string{fmt.Sprintf("http://%s:%s", address, port)}
	}

	return &ElasticsearchV8{addresses: urls, log: log.With().Str("store", "es8").Logger()}
}

func (e *ElasticsearchV8) Write(ctx context.Context, txns []domain.Transaction) error {
	retryBackoff := backoff.NewExponentialBackOff()

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: e.addresses,

		// Retry on 429 TooManyRequests statuses
		RetryOnStatus: []int{502, 503, 504, 429},

		RetryBackoff: func(i int) time.Duration {
			if i == 1 {
				retryBackoff.Reset()
			}
			return retryBackoff.NextBackOff()
		},

		MaxRetries: 5,
	})
	if err != nil {
		return err
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         esIndex,
		FlushBytes:    esFlush,
		Client:        es,
		NumWorkers:    4,
		FlushInterval: 10 * time.Second,
	})
	if err != nil {
		return err
	}

	// workers & the flush ticker only stop on Close, so every return closes
	closed := false
	defer func() {
		if !closed {
			bi.Close(context.Background())
		}
	}()

	res, err := es.Indices.Create(esIndex, es.Indices.Create.WithContext(ctx))
	if err != nil {
		e.log.Warn().Err(err).Str("index", esIndex).Msg("attempted to make index")
	} else {
		res.Body.Close()
	}

	ids := documentIDs(txns)
	for i, t := range txns {
		data, err := t.JSON()
		if err != nil {
			return err
		}

		err = bi.Add(
			ctx,
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: ids[i],
				Body:       bytes.NewReader(data),
				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					if err != nil {
						e.log.Error().Err(err).Str("id", item.DocumentID).Msg("failed to index transaction")
					} else {
						e.log.Error().Str("id", item.DocumentID).Str("type", res.Error.Type).Msg(res.Error.Reason)
					}
				},
			},
		)
		if err != nil {
			return err
		}
	}

	closed = true
	err = bi.Close(ctx)
	if err != nil {
		return err
	}

	biStats := bi.Stats()
	if biStats.NumFailed > 0 {
		e.log.Error().Uint64("flushed", biStats.NumFlushed).Uint64("failed", biStats.NumFailed).Msg("indexed with errors")
		return fmt.Errorf("failed indexing %d docs", int64(biStats.NumFailed))
	}

	e.log.Info().Uint64("flushed", biStats.NumFlushed).Msg("indexed transactions")
	return nil
}

// documentIDs derives stable ids so exporting the same window twice doesn't
// duplicate documents. Identical transactions on the same day are numbered.
func documentIDs(txns []domain.Transaction) []string {
	seen := map[string]int{}
	ids := make([]string, len(txns))
	for i, t := range txns {
		key := fmt.Sprintf("%s|%s|%s", t.Date, t.Name, t.Amount.String())
		ids[i] = crypto.Fingerprint(fmt.Sprintf("%s|%d", key, seen[key]))
		seen[key]++
	}
	return ids
}
