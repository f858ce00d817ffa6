package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/voidshard/secretary/pkg/domain"

	"github.com/rs/zerolog"
)

// Store is somewhere fetched transactions can be exported to.
type Store interface {
	Write(context.Context, []domain.Transaction) error
}

// Open picks a store from a target of the form jsonfile:/path/file.json or
// es8:http://elasticsearch:9200
func Open(target string, log zerolog.Logger) (Store, error) {
	bits := strings.SplitN(target, ":", 2)
	if len(bits) != 2 || bits[1] == "" {
		return nil, fmt.Errorf("invalid out path, expected [jsonfile:/path/to/file.json] or [es8:http://elasticsearch:9200]")
	}

	switch bits[0] {
	case "es8":
		return NewElasticsearchV8(log, bits[1]), nil
	case "jsonfile":
		return NewJSONFile(bits[1]), nil
	}
	return nil, fmt.Errorf("unknown store kind %q, expected [jsonfile es8]", bits[0])
}
