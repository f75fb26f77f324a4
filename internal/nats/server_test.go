package nats_test

import (
	"testing"

	natsserver "github.com/nats-io/nats-server/v2/test"
	libnats "github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
)

func runServer(t *testing.T) string {
	t.Helper()

	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	opts.JetStream = true
	opts.StoreDir = t.TempDir()

	srv := natsserver.RunServer(&opts)
	t.Cleanup(srv.Shutdown)

	return srv.ClientURL()
}

func connect(t *testing.T) *libnats.Conn {
	t.Helper()

	nc, err := libnats.Connect(runServer(t))
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	return nc
}
