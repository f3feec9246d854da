package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_SilentWithoutTerminal(t *testing.T) {
	defer func(v bool) { ColorOutput = v }(ColorOutput)
	ColorOutput = false

	var buf bytes.Buffer
	s := NewSpinner("loading", time.Millisecond)
	s.w = &buf
	s.StopMsg = "done\n"

	s.Start()
	s.Stop()
	assert.Equal(t, "done\n", buf.String())
}

func TestSpinner_StartStop(t *testing.T) {
	defer func(v bool) { ColorOutput = v }(ColorOutput)
	ColorOutput = true

	var buf bytes.Buffer
	s := NewSpinner("loading", time.Millisecond)
	s.w = &buf

	s.Start()
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.StopMsg = "done\n"
	s.Stop()
	s.StopMsg = ""
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "loading")
	assert.True(t, strings.HasSuffix(out, "done\n"))
}
