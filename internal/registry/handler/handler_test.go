package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/registry/models"
	"tally/internal/registry/service"
	"tally/internal/registry/store"
	"tally/pkg/domain"
	dErrors "tally/pkg/domain-errors"
	"tally/pkg/testutil"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	svc, err := service.New(store.NewMemory())
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	r := chi.NewRouter()
	New(svc, logger).Register(r)
	return r
}

func TestRegisterDonor(t *testing.T) {
	router := newRouter(t)

	t.Run("assigns sequential ids", func(t *testing.T) {
		for i, addr := range []string{"donor-a", "donor-b"} {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/registry/donors", map[string]string{"address": addr})
			rr := testutil.DoRequest(router, req)

			testutil.AssertStatus(t, rr, http.StatusCreated)
			identity := testutil.UnmarshalResponse[models.DonorIdentity](t, rr)
			assert.Equal(t, domain.DonorID(i+1), identity.ID)
			assert.Equal(t, domain.Address(addr), identity.Address)
		}
	})

	t.Run("duplicate address conflicts", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/registry/donors", map[string]string{"address": "donor-a"})
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusConflict)
		testutil.AssertErrorCode(t, rr, string(dErrors.CodeConflict))
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodPost, "/registry/donors")
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})
}

func TestResolve(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/registry/campaigns", map[string]string{"address": "campaign-x"})
	testutil.AssertStatus(t, testutil.DoRequest(router, req), http.StatusCreated)

	t.Run("known campaign", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/registry/campaigns/campaign-x"))

		testutil.AssertStatus(t, rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[map[string]uint64](t, rr)
		assert.Equal(t, uint64(1), (*resp)["id"])
	})

	t.Run("unknown address is not found", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/registry/donors/never-seen"))

		testutil.AssertStatus(t, rr, http.StatusNotFound)
		testutil.AssertErrorCode(t, rr, string(dErrors.CodeNotFound))
	})
}

func TestCounts(t *testing.T) {
	router := newRouter(t)

	for _, addr := range []string{"d1", "d2", "d3"} {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/registry/donors", map[string]string{"address": addr})
		testutil.AssertStatus(t, testutil.DoRequest(router, req), http.StatusCreated)
	}
	req := testutil.NewJSONRequest(t, http.MethodPost, "/registry/campaigns", map[string]string{"address": "c1"})
	testutil.AssertStatus(t, testutil.DoRequest(router, req), http.StatusCreated)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/registry/counts"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	counts := testutil.UnmarshalResponse[models.Counts](t, rr)
	assert.Equal(t, 3, counts.Donors)
	assert.Equal(t, 1, counts.Campaigns)
}
