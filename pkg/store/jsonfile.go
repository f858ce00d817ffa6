package store

import (
	"context"
	"encoding/json"
	"io/ioutil"

	"github.com/voidshard/secretary/pkg/domain"
)

type JSONFile struct {
	filename string
}

func NewJSONFile(filename string) Store {
	return &JSONFile{filename: filename}
}

func (f *JSONFile) Write(ctx context.Context, txns []domain.Transaction) error {
	if txns == nil {
		txns = []domain.Transaction{}
	}
	data, err := json.MarshalIndent(txns, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(f.filename, data, 0644)
}
