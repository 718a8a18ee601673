package hive

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNode_CaseInsensitiveOpen(t *testing.T) {
	root := NewNode("webcam")
	root.Child("NonPackaged").Child(`C:#Tools#cam.exe`).SetQWORD("LastUsedTimeStart", 7)

	np, err := root.OpenSubKey("NONPACKAGED")
	require.NoError(t, err)

	exe, err := np.OpenSubKey(`c:#tools#CAM.EXE`)
	require.NoError(t, err)

	v, err := exe.QWORD("LastUsedTimeStart")
	require.NoError(t, err)
	require.Equal(t, uint64(7), v)
}

func TestNode_Errors(t *testing.T) {
	root := NewNode("webcam")
	root.Child("Locked").Unreadable = true
	root.Child("App").SetValue("LastUsedTimeStart", uint32(5))

	_, err := root.OpenSubKey("Missing")
	require.ErrorIs(t, err, ErrNotExist)

	_, err = root.OpenSubKey("Locked")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNotExist))

	app, err := root.OpenSubKey("App")
	require.NoError(t, err)

	_, err = app.QWORD("LastUsedTimeStart")
	require.ErrorIs(t, err, ErrUnexpectedType)

	_, err = app.QWORD("LastUsedTimeStop")
	require.ErrorIs(t, err, ErrNotExist)
}

func TestNode_SubKeyNamesSorted(t *testing.T) {
	root := NewNode("webcam")
	for _, n := range []string{"b", "NonPackaged", "a"} {
		root.Child(n)
	}
	names, err := root.SubKeyNames()
	require.NoError(t, err)
	require.Equal(t, []string{"NonPackaged", "a", "b"}, names)
}

func TestDecodeYAML(t *testing.T) {
	doc := `
keys:
  Microsoft.WindowsCamera_8wekyb3d8bbwe:
    values:
      LastUsedTimeStart: 133497000000000000
      LastUsedTimeStop: 0
  NonPackaged:
    keys:
      "C:#Program Files#OBS#obs64.exe":
        values:
          LastUsedTimeStart: 0x1DA2B3C4D5E6F70
          LastUsedTimeStop: "yesterday"
`
	root, err := DecodeYAML(strings.NewReader(doc), "webcam")
	require.NoError(t, err)

	cam, err := root.OpenSubKey("Microsoft.WindowsCamera_8wekyb3d8bbwe")
	require.NoError(t, err)
	start, err := cam.QWORD("LastUsedTimeStart")
	require.NoError(t, err)
	require.Equal(t, uint64(133497000000000000), start)

	np, err := root.OpenSubKey("NonPackaged")
	require.NoError(t, err)
	obs, err := np.OpenSubKey(`C:#Program Files#OBS#obs64.exe`)
	require.NoError(t, err)

	start, err = obs.QWORD("LastUsedTimeStart")
	require.NoError(t, err)
	require.Equal(t, uint64(0x1DA2B3C4D5E6F70), start)

	_, err = obs.QWORD("LastUsedTimeStop")
	require.ErrorIs(t, err, ErrUnexpectedType)
}

func TestDecodeYAML_Empty(t *testing.T) {
	root, err := DecodeYAML(strings.NewReader(""), "webcam")
	require.NoError(t, err)
	names, err := root.SubKeyNames()
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestWriteYAML_Capture(t *testing.T) {
	src := NewNode("webcam")
	src.Child("Contoso.Camera").SetQWORD("LastUsedTimeStart", 1000).SetQWORD("LastUsedTimeStop", 0)
	src.Child("NonPackaged").Child(`D:#apps#zoom.exe`).SetQWORD("LastUsedTimeStart", 42)
	src.Child("Locked").Unreadable = true

	captured, err := Capture(src, "webcam")
	require.NoError(t, err)
	_, err = captured.OpenSubKey("Locked")
	require.ErrorIs(t, err, ErrNotExist, "unreadable keys are not captured")

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, captured))

	path := filepath.Join(t.TempDir(), "hive.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	back, err := LoadYAML(path)
	require.NoError(t, err)

	np, err := back.OpenSubKey("nonpackaged")
	require.NoError(t, err)
	k, err := np.OpenSubKey(`D:#apps#zoom.exe`)
	require.NoError(t, err)
	v, err := k.QWORD("LastUsedTimeStart")
	require.NoError(t, err)
	require.Equal(t, uint64(42), v)

	k, err = back.OpenSubKey("Contoso.Camera")
	require.NoError(t, err)
	v, err = k.QWORD("LastUsedTimeStop")
	require.NoError(t, err)
	require.Zero(t, v)
}

func TestLoadYAML_MissingFile(t *testing.T) {
	_, err := LoadYAML(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
