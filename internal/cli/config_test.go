package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/ringheap/internal/cli"
)

func Test_LoadConfig_Returns_Defaults_When_No_Files_Exist(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	cfg, sources, err := cli.LoadConfig(c.Dir, "", cli.Config{}, c.Env)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Capacity)
	assert.Equal(t, cli.OrderMin, cfg.Order)
	assert.True(t, cfg.HistoryEnabled())
	assert.Equal(t, filepath.Join(c.Env["HOME"], ".ringy_history"), cfg.HistoryFile)
	assert.Equal(t, cli.ConfigSources{}, sources)
}

func Test_LoadConfig_Applies_Precedence_When_Every_Layer_Set(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	globalPath := c.WriteFile(c.GlobalConfigPath(), `{"capacity": 4, "order": "max", "history": false}`)
	projectPath := c.WriteFile(cli.ConfigFileName, `{"capacity": 8}`)

	cfg, sources, err := cli.LoadConfig(c.Dir, "", cli.Config{Order: cli.OrderMin}, c.Env)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Capacity, "project beats global")
	assert.Equal(t, cli.OrderMin, cfg.Order, "override beats global")
	assert.False(t, cfg.HistoryEnabled(), "global beats default")
	assert.Equal(t, cli.ConfigSources{Global: globalPath, Project: projectPath}, sources)
}

func Test_LoadConfig_Uses_Explicit_File_Instead_Of_Project_When_Path_Given(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(cli.ConfigFileName, `{"capacity": 8}`)
	explicit := c.WriteFile("conf/custom.json", `{"order": "max"}`)

	cfg, sources, err := cli.LoadConfig(c.Dir, "conf/custom.json", cli.Config{}, c.Env)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Capacity, "project file is skipped")
	assert.Equal(t, cli.OrderMax, cfg.Order)
	assert.Equal(t, explicit, sources.Project)
}

func Test_LoadConfig_Accepts_Comments_And_Trailing_Commas_When_Parsing(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(cli.ConfigFileName, `{
		// keep the last 3
		"capacity": 3,
		"history_file": "/tmp/ringy-test-history",
	}`)

	cfg, _, err := cli.LoadConfig(c.Dir, "", cli.Config{}, c.Env)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Capacity)
	assert.Equal(t, "/tmp/ringy-test-history", cfg.HistoryFile)
}

func Test_LoadConfig_Fails_When_Config_Broken(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		content    string
		configPath string
		wantErr    error
	}{
		{name: "MissingExplicitFile", configPath: "nope.json", wantErr: cli.ErrConfigFileNotFound},
		{name: "Malformed", content: `{"capacity": `, wantErr: cli.ErrConfigInvalid},
		{name: "WrongType", content: `{"capacity": "big"}`, wantErr: cli.ErrConfigInvalid},
		{name: "NegativeCapacity", content: `{"capacity": -2}`, wantErr: cli.ErrInvalidCapacity},
		{name: "UnknownOrder", content: `{"order": "sideways"}`, wantErr: cli.ErrInvalidOrder},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			if testCase.content != "" {
				c.WriteFile(cli.ConfigFileName, testCase.content)
			}

			_, _, err := cli.LoadConfig(c.Dir, testCase.configPath, cli.Config{}, c.Env)
			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func Test_Run_Prints_Resolved_Config_When_Print_Config_Given(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	projectPath := c.WriteFile(cli.ConfigFileName, `{"order": "max"}`)

	stdout := c.MustRun("", "--print-config", "-n", "5", "--no-history")

	cli.AssertContains(t, stdout, "# project: "+projectPath)
	cli.AssertContains(t, stdout, `"capacity": 5`)
	cli.AssertContains(t, stdout, `"order": "max"`)
	cli.AssertContains(t, stdout, `"history": false`)
}
