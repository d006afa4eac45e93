package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingLayer struct{}

func (failingLayer) Listen(protocol, addr string) (net.Listener, error) {
	return nil, errors.New("listen refused")
}

func TestHTTPServer_Address(t *testing.T) {
	s := NewHTTPServer(http.NewServeMux(), ":8080")
	assert.Equal(t, ":8080", s.Address())
}

func TestHTTPServer_Start_ListenFailure(t *testing.T) {
	s := NewHTTPServer(http.NewServeMux(), ":8080")

	err := s.Start(failingLayer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}

func TestHTTPServer_StartStop(t *testing.T) {
	s := NewHTTPServer(http.NewServeMux(), "127.0.0.1:0")

	done := make(chan error, 1)
	go func() {
		done <- s.Start(NewPlainListener())
	}()

	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, <-done)
}
