package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()

	SetVersion("1.2.3")
	out, err := execute("", "version")

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "composer version 1.2.3 (go"))
}

func TestVersionCmd_Short(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()

	version = "1.2.3"
	out, err := execute("", "version", "--short")

	assert.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)
}

func TestSetVersion_IgnoresEmpty(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()

	version = "dev"
	SetVersion("")

	assert.Equal(t, "dev", version)
}

func TestRootCmd_HasCommands(t *testing.T) {
	commandNames := make([]string, 0, len(rootCmd.Commands()))
	for _, cmd := range rootCmd.Commands() {
		commandNames = append(commandNames, cmd.Name())
	}

	for _, name := range []string{"compose", "convert", "draft", "member", "settings", "mcp", "version"} {
		assert.Contains(t, commandNames, name)
	}
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")

	assert.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
}
