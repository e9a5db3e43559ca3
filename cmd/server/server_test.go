package main

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunServerShutsDownOnCancel(t *testing.T) {
	t.Parallel()
	app := newTestApplication(t)
	app.config.Server.ShutdownTimeout = time.Second

	server := &http.Server{Addr: "127.0.0.1:0", Handler: app.routes()}
	listening := make(chan struct{})
	listen := func() error {
		close(listening)
		return server.ListenAndServe()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.runServer(ctx, server, listen) }()

	<-listening
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRunServerReturnsListenError(t *testing.T) {
	t.Parallel()
	app := newTestApplication(t)

	err := app.runServer(context.Background(), &http.Server{}, func() error {
		return errors.New("address in use")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address in use")
}
