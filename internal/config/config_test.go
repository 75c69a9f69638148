package config_test

import (
	"testing"

	"github.com/ferrite-lang/ferritec/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestDefaultIsValid(t *testing.T) {
	c := config.Default()
	assert.Equal(t, 64, c.AddressSize)
	assert.Equal(t, 32, c.DefaultIntSize)
	assert.NoError(t, c.Validate())
}

func TestOptionsOverrideDefaults(t *testing.T) {
	c := config.NewConfig(config.WithAddressSize(32), config.WithDefaultIntSize(16))
	assert.Equal(t, 32, c.AddressSize)
	assert.Equal(t, 16, c.DefaultIntSize)
	assert.NoError(t, c.Validate())
}

func TestValidateRejectsUnsupportedSizes(t *testing.T) {
	for _, bad := range []int{0, 1, 24, 128} {
		c := config.NewConfig(config.WithAddressSize(bad))
		assert.Errorf(t, c.Validate(), "address size %d should be rejected", bad)

		c = config.NewConfig(config.WithDefaultIntSize(bad))
		assert.Errorf(t, c.Validate(), "default int size %d should be rejected", bad)
	}
}
