package net

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	service, err := NewService("studio", 8888, []net.IP{net.IPv4(192, 168, 1, 4)})
	require.NoError(t, err)
	assert.Equal(t, "studio", service.Instance)
	assert.Equal(t, ServiceType, service.Service)
	assert.Equal(t, "studio.local.", service.HostName)
	assert.Equal(t, 8888, service.Port)
	assert.Equal(t, []string{"PathBoard mirror"}, service.TXT)
}

func TestFirstIPv4(t *testing.T) {
	assert.NotNil(t, FirstIPv4().To4())
}
