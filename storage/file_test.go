package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_File_Log_Keeps_Append_Order(t *testing.T) {
	req := require.New(t)
	log := NewFileLog(filepath.Join(t.TempDir(), "guestbook.txt"))

	messages := []string{"Hello, ECS!", "second message", "third message"}
	for _, m := range messages {
		req.NoError(log.Append(m))
	}

	lines, err := log.ReadAll()
	req.NoError(err)
	req.Equal(messages, lines)
}

func Test_File_Log_Missing_File_Reads_Empty(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "guestbook.txt")
	log := NewFileLog(path)

	lines, err := log.ReadAll()
	req.NoError(err)
	req.Empty(lines)

	// Reading never creates the file; only the first append does.
	_, err = os.Stat(path)
	req.True(os.IsNotExist(err))
}

func Test_File_Log_Created_On_First_Append(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "guestbook.txt")
	log := NewFileLog(path)

	req.NoError(log.Append("first"))

	_, err := os.Stat(path)
	req.NoError(err)
	lines, err := log.ReadAll()
	req.NoError(err)
	req.Equal([]string{"first"}, lines)
}

func Test_File_Log_Skips_Blank_Lines(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "guestbook.txt")
	req.NoError(os.WriteFile(path, []byte("one\n\n\ntwo\n"), 0o644))

	lines, err := NewFileLog(path).ReadAll()
	req.NoError(err)
	req.Equal([]string{"one", "two"}, lines)
}

func Test_File_Log_Append_Fails_On_Unwritable_Path(t *testing.T) {
	req := require.New(t)
	// The path is a directory, so opening it for writing must fail.
	log := NewFileLog(t.TempDir())

	req.Error(log.Append("does not land"))
}
