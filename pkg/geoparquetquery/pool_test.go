package geoparquetquery

import (
	"context"
	"errors"
	"testing"
)

func TestPoolMutationsAreReadOnly(t *testing.T) {
	p := NewPool()
	ctx := context.Background()

	if err := p.Insert(ctx, "data.parquet", nil); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Insert = %v, want ErrReadOnly", err)
	}
	if err := p.Update(ctx, "data.parquet", nil); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Update = %v, want ErrReadOnly", err)
	}
	if err := p.Delete(ctx, "data.parquet", "item-1"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Delete = %v, want ErrReadOnly", err)
	}
}

func TestPoolCloseOnEmptyPoolIsNoop(t *testing.T) {
	p := NewPool()
	if err := p.Close(); err != nil {
		t.Errorf("Close on an empty pool: %v", err)
	}
}
