package biz

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"github.com/zhenzou/executors"

	"github.com/SyedFrazAli/geoscope/internal/objects"
	"github.com/SyedFrazAli/geoscope/internal/server/db"
)

type testFixture struct {
	client        *db.Client
	obsStore      *db.ObservationStore
	usageStore    *db.UsageStore
	policy        *AccessPolicy
	products      *ProductService
	subscriptions *SubscriptionService
	observations  *ObservationService
	usage         *UsageService
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())

	client, err := db.New(db.Config{
		DSN: "file:biz_" + name + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	subStore := db.NewSubscriptionStore(client)
	obsStore := db.NewObservationStore(client)
	usageStore := db.NewUsageStore(client)

	policy := NewAccessPolicy(AccessConfig{}, subStore)
	products := NewProductService(ProductServiceParams{Products: db.NewProductStore(client)})

	executor := executors.NewPoolScheduleExecutor()
	t.Cleanup(func() {
		_ = executor.Shutdown(context.Background())
	})

	return &testFixture{
		client:     client,
		obsStore:   obsStore,
		usageStore: usageStore,
		policy:     policy,
		products:   products,
		subscriptions: NewSubscriptionService(SubscriptionServiceParams{
			Subscriptions: subStore,
		}),
		observations: NewObservationService(ObservationServiceParams{
			Observations:   obsStore,
			Policy:         policy,
			ProductService: products,
		}),
		usage: NewUsageService(UsageServiceParams{
			Usage:    usageStore,
			Executor: executor,
		}),
	}
}

// seedObservation writes a record directly through the store so tests can
// control fields the create path does not accept, including a nil product id.
func (f *testFixture) seedObservation(t *testing.T, productID *int, value string, at time.Time) int {
	t.Helper()

	id, err := f.obsStore.Create(context.Background(), &objects.ObservationRecord{
		ProductID: productID,
		Value:     value,
		Timestamp: lo.ToPtr(at),
	})
	require.NoError(t, err)

	return id
}
