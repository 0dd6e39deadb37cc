// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-natours/internal/config"
	"github.com/MKhiriev/go-natours/internal/handler"
	myGRPC "github.com/MKhiriev/go-natours/internal/handler/grpc"
	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type stopWorker struct {
	stopped chan struct{}
}

func (w *stopWorker) Run(ctx context.Context) {
	<-ctx.Done()
	close(w.stopped)
}

func TestNewServer_NoServers(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, nil, config.Server{}, logger.Nop())

	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewServer_GRPCListenFailure(t *testing.T) {
	handlers := &handler.Handlers{GRPC: myGRPC.NewHandler(logger.Nop())}

	_, err := NewServer(handlers, nil, config.Server{GRPCAddress: "256.0.0.1:0"}, logger.Nop())

	assert.Error(t, err)
}

func TestRun_NoServers(t *testing.T) {
	s := &server{logger: logger.Nop()}

	assert.ErrorIs(t, s.run(context.Background()), errNoServersToRun)
}

// TestRun_ServesUntilCancelled starts the gRPC health server on a random
// port, checks it answers, then cancels and expects workers to be stopped
// and the health status to be withdrawn.
func TestRun_ServesUntilCancelled(t *testing.T) {
	grpcHandler := myGRPC.NewHandler(logger.Nop())
	worker := &stopWorker{stopped: make(chan struct{})}

	srv, err := NewServer(
		&handler.Handlers{GRPC: grpcHandler},
		workers.NewWorkers(worker),
		config.Server{GRPCAddress: "127.0.0.1:0"},
		logger.Nop(),
	)
	require.NoError(t, err)
	s := srv.(*server)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.run(ctx) }()

	conn, err := grpc.NewClient(s.gRPCServer.gRPCNetListener.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	client := healthpb.NewHealthClient(conn)
	assert.Eventually(t, func() bool {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: myGRPC.ServiceName})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	select {
	case <-worker.stopped:
	default:
		t.Fatal("worker still running after shutdown")
	}
}
