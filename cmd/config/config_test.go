package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parthalab/krakensync/pkg/config"
	"github.com/parthalab/krakensync/pkg/errors"
)

func TestSetupConfigMergesFlags(t *testing.T) {
	parseUserConfig = func() (config.User, error) {
		return config.User{RemoteHost: "kraken", RemoteUser: "web"}, nil
	}

	var written config.User
	writeUserConfig = func(cfg config.User) error {
		written = cfg
		return nil
	}
	stdout = &bytes.Buffer{}

	err := SetupConfig(config.User{ProductionDir: "/srv/www"})
	assert.NoError(t, err)
	assert.Equal(t, config.User{
		RemoteHost:    "kraken",
		RemoteUser:    "web",
		ProductionDir: "/srv/www",
	}, written)
}

func TestSetupConfigNoExistingFile(t *testing.T) {
	parseUserConfig = func() (config.User, error) {
		return config.User{}, errors.FileNotFound{Path: "/home/test/.krakensync.yaml"}
	}

	var written config.User
	writeUserConfig = func(cfg config.User) error {
		written = cfg
		return nil
	}
	stdout = &bytes.Buffer{}

	err := SetupConfig(config.User{RemoteHost: "crab"})
	assert.NoError(t, err)
	assert.Equal(t, config.User{RemoteHost: "crab"}, written)
}
