package ch

import (
	"context"
	"testing"

	"logzq/internal/platform/testkit"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "clickhouse://h:notaport/db\x7f"}); err == nil {
		t.Fatalf("expected dsn error")
	}
}

func TestOpen_SetsClientInfo(t *testing.T) {
	testkit.Serial(t)

	var got *clickhouse.Options
	testkit.Swap(t, &openConn, func(o *clickhouse.Options) (driver.Conn, error) {
		got = o
		return nil, nil
	})

	_, err := Open(context.Background(), Config{URL: "clickhouse://default:pw@ch.internal:9000/logs", Role: "sink"})
	testkit.MustNoErr(t, err)
	if got == nil || len(got.Addr) != 1 || got.Addr[0] != "ch.internal:9000" || got.Auth.Database != "logs" {
		t.Fatalf("options %+v", got)
	}
	if p := got.ClientInfo.Products; len(p) == 0 || p[0].Name != "logzq" || p[0].Version != "sink" {
		t.Fatalf("client info %+v", got.ClientInfo)
	}
}
