package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Badger_Log_Keeps_Append_Order(t *testing.T) {
	req := require.New(t)
	log, err := NewBadgerLog(t.TempDir())
	req.NoError(err)
	defer log.Close()

	messages := []string{"Hello, ECS!", "second message", "third message"}
	for _, m := range messages {
		req.NoError(log.Append(m))
	}

	lines, err := log.ReadAll()
	req.NoError(err)
	req.Equal(messages, lines)
}

func Test_Badger_Log_Empty_Reads_Empty(t *testing.T) {
	req := require.New(t)
	log, err := NewBadgerLog(t.TempDir())
	req.NoError(err)
	defer log.Close()

	lines, err := log.ReadAll()
	req.NoError(err)
	req.Empty(lines)
}

func Test_Badger_Log_Order_Survives_Reopen(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()

	log, err := NewBadgerLog(dir)
	req.NoError(err)
	req.NoError(log.Append("before restart"))
	req.NoError(log.Close())

	log, err = NewBadgerLog(dir)
	req.NoError(err)
	defer log.Close()
	req.NoError(log.Append("after restart"))

	lines, err := log.ReadAll()
	req.NoError(err)
	req.Equal([]string{"before restart", "after restart"}, lines)
}
