package cliargs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualsForm(t *testing.T) {
	a := Parse([]string{"-port=9090", "-name=pbcore"})
	assert.Equal(t, 9090, a.IntDefault("port", 0))
	assert.Equal(t, "pbcore", a.StringDefault("name", ""))
}

func TestShellForm(t *testing.T) {
	a := Parse([]string{"-port", "9090", "-verbose"})
	v, ok := a.String("port")
	assert.True(t, ok)
	assert.Equal(t, "9090", v)
	v, ok = a.String("verbose")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestRepeatedKeyKeepsLastForSingleLookup(t *testing.T) {
	a := Parse([]string{"-tag", "a", "-tag", "b"})
	v, _ := a.String("tag")
	assert.Equal(t, "b", v)
	assert.Equal(t, []string{"a", "b"}, a.Values("tag"))
}

func TestPositionalArgs(t *testing.T) {
	a := Parse([]string{"-port", "9090", "decode", "payload.bin"})
	assert.Equal(t, []string{"decode", "payload.bin"}, a.Other())
}

func TestMissingKeyDefaults(t *testing.T) {
	a := Parse(nil)
	assert.Equal(t, 64, a.IntDefault("depth", 64))
}
