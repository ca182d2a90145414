package msgbar

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddKeepsNewestFirst(t *testing.T) {
	m := New()
	for i := 0; i < 8; i++ {
		m.Add(fmt.Sprintf("msg %d", i))
	}
	assert.Len(t, m.Messages(), barHeight-2)
	assert.Equal(t, "msg 7", m.Messages()[0])
	assert.Equal(t, "msg 3", m.Messages()[barHeight-3])
}

func TestUpdateMessage(t *testing.T) {
	m := New()
	m, _ = m.Update(Message("grid: UTM"))
	m, _ = m.Update(Message("grid: MGRS"))

	out := m.View()
	assert.Contains(t, out, "grid: MGRS")
	// oldest on top
	assert.Less(t, strings.Index(out, "grid: UTM"), strings.Index(out, "grid: MGRS"))
}
