package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trainCSV = `x,y
2,2
3,4
4,5
5,4
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFitCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", trainCSV)

	out, err := run(t, "fit", "--data", data, "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "(Intercept)")
	assert.Contains(t, out, "1.3")
	assert.Contains(t, out, "0.7")
	assert.Contains(t, out, "on 2 degrees of freedom")
	assert.Contains(t, out, "F-statistic")
}

func TestPredictCommand(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", trainCSV)
	newData := writeFile(t, dir, "new.csv", "x\n6\n")

	out, err := run(t, "predict", "--data", data, "--new", newData,
		"--interval", "prediction", "--level", "0.9", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "lwr")
	assert.Contains(t, out, "5.5")
}

func TestPredictCommandErrors(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", trainCSV)

	_, err := run(t, "predict", "--data", data, "--log-level", "error")
	assert.ErrorContains(t, err, "--new")

	newData := writeFile(t, dir, "new.csv", "x\nNA\n")
	_, err = run(t, "predict", "--data", data, "--new", newData, "--log-level", "error")
	assert.ErrorContains(t, err, "missing value")

	_, err = run(t, "predict", "--data", data, "--new", newData, "--interval", "tolerance", "--log-level", "error")
	assert.ErrorContains(t, err, "unknown interval")
}

func TestFitCommandSingular(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", "a,b,y\n1,2,1\n2,4,3\n3,6,2\n4,8,5\n")

	_, err := run(t, "fit", "--data", data, "--log-level", "error")
	assert.ErrorContains(t, err, "singular system")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "train.csv", strings.ReplaceAll(trainCSV, "x,y", "x,mpg"))
	config := writeFile(t, dir, "olsfit.yaml", "data: "+data+"\nresponse: mpg\nlevel: 0.99\nlog_level: error\n")

	out, err := run(t, "fit", "--config", config)
	require.NoError(t, err)
	assert.Contains(t, out, "0.7")

	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", config, "--level", "0.8"}))
	o, err := resolve(cmd, config, options{Level: 0.8})
	require.NoError(t, err)
	assert.Equal(t, "mpg", o.Response)
	assert.Equal(t, 0.8, o.Level)
	assert.Equal(t, data, o.Data)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"), defaultOptions())
	assert.ErrorContains(t, err, "failed to read config file")
}
