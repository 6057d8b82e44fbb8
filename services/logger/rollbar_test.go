package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/user"
)

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	conf := core.NewTestConfig()
	logger := NewRollbarLogger(log.New(&buf, "API : ", 0), conf)

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.Error("saving grade", errors.New("boom"), user.User{ID: "1", Username: "sara"})
	out := buf.String()
	assert.Contains(t, out, "API : ERROR saving grade")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "sara")

	buf.Reset()
	logger.debug = true
	logger.Debug("shown", map[string]interface{}{"id": 7})
	assert.Contains(t, buf.String(), "DEBUG shown")
	assert.Contains(t, buf.String(), "map[id:7]")
}
