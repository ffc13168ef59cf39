package module

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	modkit "logzq/internal/modkit"
	pmodule "logzq/internal/modkit/module"
	"logzq/internal/platform/config"
	perr "logzq/internal/platform/errors"
	"logzq/internal/services/retrieval/domain"
	"logzq/internal/services/retrieval/service"
)

const twoHits = `{"responses":[{"status":200,"hits":{"total":2,"hits":[` +
	`{"_index":"logzioCustomerIndex200305","_id":"a","_source":{"msg":"first"}},` +
	`{"_index":"logzioCustomerIndex200305","_id":"b","_source":{"msg":"second"}}]}}]}`

func TestFromConfig_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("LOGZQ_TOKEN", "tok")
	t.Setenv("LOGZQ_PAGE_SIZE", "250")
	t.Setenv("LOGZQ_WINDOW", "6h")
	t.Setenv("LOGZQ_PIN_ADDR", "10.0.0.7")
	t.Setenv("LOGZQ_RETRIES", "2")

	o := FromConfig(config.New().Prefix("LOGZQ_"))
	if o.Client.Token != "tok" || o.Client.PinAddr != "10.0.0.7" || o.Client.MaxRetries != 2 {
		t.Fatalf("client options %+v", o.Client)
	}
	if o.Service.PageSize != 250 || o.Service.DefaultWindowSize != 6*time.Hour {
		t.Fatalf("service options %+v", o.Service)
	}
	if o.Service.HardCap != service.DefaultHardCap || o.Service.IndexPrefix != service.DefaultIndexPrefix {
		t.Fatalf("defaults not kept %+v", o.Service)
	}
}

func TestNew_WiresAdapterIntoRetrieverPort(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("x-auth-token") != "tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(twoHits))
	}))
	defer srv.Close()

	t.Setenv("LOGZQ_TOKEN", "tok")
	t.Setenv("LOGZQ_BASE_URL", srv.URL)

	m, err := New(modkit.Deps{Cfg: config.New()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Name() != "retrieval" {
		t.Fatalf("name %q", m.Name())
	}

	r := pmodule.MustPortsOf[domain.RetrieverPort](m)
	start := time.Date(2020, 3, 5, 0, 0, 0, 0, time.UTC)
	docs, err := r.Query(context.Background(), domain.QuerySpec{
		Query: "*",
		Start: start,
		End:   start.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(docs) != 2 || string(docs[0]) != `{"msg":"first"}` {
		t.Fatalf("docs %q", docs)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one upstream call, got %d", calls.Load())
	}
}

func TestNewWithOptions_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewWithOptions(modkit.Deps{}, Options{Service: service.DefaultConfig()})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("missing token: %v", err)
	}

	bad := service.DefaultConfig()
	bad.HardCap = bad.PageSize - 1
	o := Options{Service: bad}
	o.Client.Token = "tok"
	_, err = NewWithOptions(modkit.Deps{}, o)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("bad service config: %v", err)
	}
}
