package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	expected := []string{
		"list", "search", "install", "uninstall", "conflicts",
		"update", "reconcile", "registry", "config", "browse", "version",
	}
	for _, name := range expected {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestNewRootCmd_GlobalFlags(t *testing.T) {
	root := NewRootCmd()

	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
}

func TestNewRootCmd_RegistrySubcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"refresh", "diff"} {
		cmd, _, err := root.Find([]string{"registry", name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}
