// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_MetricsEndpoint(t *testing.T) {
	server := NewServer("127.0.0.1:0")
	require.NoError(t, server.Start())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	}()

	addr := server.Addr()
	require.NotEmpty(t, addr)

	server.Metrics().RecordParse("text", nil)
	server.Metrics().RecordParse("json", errors.New("boom"))
	server.Metrics().RecordSerialize("text")
	server.Metrics().RecordOperator("S_INTERSECTS")

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	bodyStr := string(body)

	assert.Contains(t, bodyStr, "cql2_parse_total")
	assert.Contains(t, bodyStr, "cql2_serialize_total")
	assert.Contains(t, bodyStr, "cql2_operator_total")
	assert.Contains(t, bodyStr, `syntax="text"`)
	assert.Contains(t, bodyStr, `result="failure"`)
}

func TestServer_StartTwiceFails(t *testing.T) {
	server := NewServer("127.0.0.1:0")
	require.NoError(t, server.Start())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	}()

	assert.Error(t, server.Start())
}

func TestRecordParse_LabelsResultByError(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordParse("text", nil)
	m.RecordParse("text", errors.New("bad"))

	assert.InDelta(t, 1, testutil.ToFloat64(m.ParseTotal.WithLabelValues("text", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ParseTotal.WithLabelValues("text", "failure")), 0)
}
