package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type appOptions map[string]interface{}

func (o appOptions) Get(key string) interface{} {
	return o[key]
}

func Test_GetConfig(t *testing.T) {
	cfg := GetConfig(appOptions{})
	require.Equal(t, DefaultHubConfig(), cfg)

	cfg = GetConfig(appOptions{
		flagDefaultQueryLimit: "50",
		flagMaxQueryLimit:     "40",
		flagMinRedelegation:   uint64(15000),
	})
	require.Equal(t, HubConfig{
		DefaultQueryLimit: 40,
		MaxQueryLimit:     40,
		MinRedelegation:   15000,
	}, cfg)
}

func Test_PageLimit(t *testing.T) {
	cfg := DefaultHubConfig()
	require.Equal(t, 10, cfg.PageLimit(0))
	require.Equal(t, 5, cfg.PageLimit(5))
	require.Equal(t, 30, cfg.PageLimit(100))
}
