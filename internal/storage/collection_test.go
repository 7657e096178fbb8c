package storage_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/costs/internal/metrics"
	"github.com/mmynk/costs/internal/models"
	"github.com/mmynk/costs/internal/storage"
	"github.com/mmynk/costs/internal/storage/sqlite"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newKV(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	kv, err := sqlite.New(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

// failingKV fails every write and delete.
type failingKV struct {
	storage.KV
}

func (failingKV) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func (failingKV) Delete(context.Context, string) error {
	return errors.New("read-only")
}

// captureLogs routes the default logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// replace overwrites the whole collection with items.
func replace(ctx context.Context, c *storage.Collection[record], items []record) error {
	return c.Update(ctx, func([]record) ([]record, error) { return items, nil })
}

func TestCollection_LoadMissingKeyIsEmpty(t *testing.T) {
	c := storage.NewCollection[record](newKV(t), "things")
	items := c.Load(context.Background())
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCollection_UpdateLoadKeepsOrder(t *testing.T) {
	ctx := context.Background()
	c := storage.NewCollection[record](newKV(t), "things")

	want := []record{{ID: "3", Name: "c"}, {ID: "1", Name: "a"}, {ID: "2", Name: "b"}}
	require.NoError(t, replace(ctx, c, want))
	assert.Equal(t, want, c.Load(ctx))
}

func TestCollection_MalformedDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	require.NoError(t, kv.Set(ctx, "things", []byte("{not json")))

	c := storage.NewCollection[record](kv, "things")
	assert.Empty(t, c.Load(ctx))
}

func TestCollection_NullDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	require.NoError(t, kv.Set(ctx, "things", []byte("null")))

	c := storage.NewCollection[record](kv, "things")
	items := c.Load(ctx)
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCollection_WriteFailureIsPersistenceError(t *testing.T) {
	c := storage.NewCollection[record](failingKV{KV: newKV(t)}, "things")
	err := replace(context.Background(), c, []record{{ID: "1"}})
	assert.ErrorIs(t, err, models.ErrPersistence)
}

func TestCollection_UpdateErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	c := storage.NewCollection[record](newKV(t), "things")
	require.NoError(t, replace(ctx, c, []record{{ID: "1"}}))

	boom := errors.New("boom")
	err := c.Update(ctx, func(items []record) ([]record, error) {
		return append(items, record{ID: "2"}), boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, c.Load(ctx), 1)
}

func TestCollection_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	ctx := context.Background()
	c := storage.NewCollection[record](newKV(t), "things")

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := c.Update(ctx, func(items []record) ([]record, error) {
				return append(items, record{ID: models.NewID()}), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, c.Load(ctx), writers)
}

func TestDocument_RoundTripAndDelete(t *testing.T) {
	ctx := context.Background()
	d := storage.NewDocument[record](newKV(t), "one")

	assert.Nil(t, d.Get(ctx))

	require.NoError(t, d.Put(ctx, &record{ID: "x", Name: "first"}))
	got := d.Get(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.Name)

	require.NoError(t, d.Delete(ctx))
	assert.Nil(t, d.Get(ctx))
}

func TestDocument_MalformedIsNil(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	require.NoError(t, kv.Set(ctx, "one", []byte("][")))

	d := storage.NewDocument[record](kv, "one")
	assert.Nil(t, d.Get(ctx))
}

func TestDocument_PutEncodeFailure(t *testing.T) {
	logs := captureLogs(t)
	counter := metrics.StorageFailures.WithLabelValues("ratio", "encode")
	before := testutil.ToFloat64(counter)

	d := storage.NewDocument[float64](newKV(t), "ratio")
	nan := math.NaN()
	err := d.Put(context.Background(), &nan)

	assert.ErrorIs(t, err, models.ErrPersistence)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Contains(t, logs.String(), "Failed to encode document")
}

func TestDocument_DeleteFailure(t *testing.T) {
	logs := captureLogs(t)
	counter := metrics.StorageFailures.WithLabelValues("one", "delete")
	before := testutil.ToFloat64(counter)

	d := storage.NewDocument[record](failingKV{KV: newKV(t)}, "one")
	err := d.Delete(context.Background())

	assert.ErrorIs(t, err, models.ErrPersistence)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Contains(t, logs.String(), "Failed to delete document")
}
