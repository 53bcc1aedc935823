package mongostore

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"notodo/internal/store"
	"notodo/internal/store/storetest"
)

// dropOnClose removes the throwaway database before disconnecting.
type dropOnClose struct {
	*MongoStore
}

func (d dropOnClose) Close() error {
	d.db.Drop(context.Background())
	return d.MongoStore.Close()
}

func TestMongoConformance(t *testing.T) {
	uri := os.Getenv("NOTODO_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("NOTODO_TEST_MONGO_URI not set")
	}

	storetest.Run(t, func(t *testing.T) store.Store {
		name := "notodo_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		s, err := New(context.Background(), uri, name)
		require.NoError(t, err)
		return dropOnClose{s}
	})
}
