//go:build !debug

package broadphase

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/ridge/internal/domain/physics"
)

func TestSpace_MisuseIsLogged(t *testing.T) {
	s, env := newTestSpace(t)
	var buf bytes.Buffer
	s.Log = log.New(&buf, "", 0)
	a := physics.NewActor(env, 0, 0, 8, 8, physics.LayerAll)

	s.Remove(a)
	assert.Contains(t, buf.String(), "remove of unknown entity")

	buf.Reset()
	s.Add(a)
	s.Add(a)
	assert.Contains(t, buf.String(), "double add")

	s.Flush()
	buf.Reset()
	s.Remove(a)
	s.Remove(a)
	assert.Contains(t, buf.String(), "double remove")

	s.Flush()
	assert.Equal(t, 0, s.Len())
}
