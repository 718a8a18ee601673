package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/camusage/internal/hive"
)

// Helper function to create an in-memory store for testing
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	if err := store.CreateSchema(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return store
}

func sampleTree() *hive.Node {
	root := hive.NewNode("webcam")
	root.Child("Microsoft.WindowsCamera_8wekyb3d8bbwe").
		SetQWORD("LastUsedTimeStart", 133497000000000000).
		SetQWORD("LastUsedTimeStop", 0)
	root.Child("NonPackaged").Child(`C:#Program Files#OBS#obs64.exe`).
		SetQWORD("LastUsedTimeStart", 5000).
		SetQWORD("LastUsedTimeStop", 9000)
	root.Child("Broken.App").SetValue("LastUsedTimeStart", "not a number")
	return root
}

func TestNew(t *testing.T) {
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer store.Close()

	if store.db == nil {
		t.Error("Store.db should not be nil")
	}
}

func TestRoot_NoSchema_ReturnsErrNotInitialized(t *testing.T) {
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer s.Close()

	// Do NOT call CreateSchema; simulate uninitialized database.
	_, err = s.Root()
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Root() error = %v; want ErrNotInitialized", err)
	}
}

func TestRoot_EmptySchema_ReturnsErrNotInitialized(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	_, err := s.Root()
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Root() error = %v; want ErrNotInitialized", err)
	}
}

func TestSaveTreeAndRead(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveTree(sampleTree()); err != nil {
		t.Fatalf("SaveTree() failed: %v", err)
	}

	root, err := s.Root()
	if err != nil {
		t.Fatalf("Root() failed: %v", err)
	}
	defer root.Close()

	names, err := root.SubKeyNames()
	if err != nil {
		t.Fatalf("SubKeyNames() failed: %v", err)
	}
	want := []string{"Broken.App", "Microsoft.WindowsCamera_8wekyb3d8bbwe", "NonPackaged"}
	if len(names) != len(want) {
		t.Fatalf("SubKeyNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("SubKeyNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	// Lookup is case-insensitive, like the registry.
	np, err := root.OpenSubKey("nonpackaged")
	if err != nil {
		t.Fatalf("OpenSubKey(nonpackaged) failed: %v", err)
	}
	defer np.Close()

	exe, err := np.OpenSubKey(`C:#Program Files#OBS#obs64.exe`)
	if err != nil {
		t.Fatalf("OpenSubKey(exe) failed: %v", err)
	}
	start, err := exe.QWORD("LastUsedTimeStart")
	if err != nil || start != 5000 {
		t.Errorf("QWORD(LastUsedTimeStart) = %d, %v; want 5000, nil", start, err)
	}
	stop, err := exe.QWORD("LastUsedTimeStop")
	if err != nil || stop != 9000 {
		t.Errorf("QWORD(LastUsedTimeStop) = %d, %v; want 9000, nil", stop, err)
	}
}

func TestQWORD_Errors(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveTree(sampleTree()); err != nil {
		t.Fatalf("SaveTree() failed: %v", err)
	}
	root, err := s.Root()
	if err != nil {
		t.Fatalf("Root() failed: %v", err)
	}
	defer root.Close()

	broken, err := root.OpenSubKey("Broken.App")
	if err != nil {
		t.Fatalf("OpenSubKey(Broken.App) failed: %v", err)
	}

	if _, err := broken.QWORD("LastUsedTimeStart"); !errors.Is(err, hive.ErrUnexpectedType) {
		t.Errorf("QWORD(malformed) error = %v; want ErrUnexpectedType", err)
	}
	if _, err := broken.QWORD("LastUsedTimeStop"); !errors.Is(err, hive.ErrNotExist) {
		t.Errorf("QWORD(missing) error = %v; want ErrNotExist", err)
	}
	if _, err := root.OpenSubKey("Nope"); !errors.Is(err, hive.ErrNotExist) {
		t.Errorf("OpenSubKey(missing) error = %v; want ErrNotExist", err)
	}
}

func TestSaveTree_ReplacesPreviousTree(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	if err := s.SaveTree(sampleTree()); err != nil {
		t.Fatalf("first SaveTree() failed: %v", err)
	}

	second := hive.NewNode("webcam")
	second.Child("Only.One").SetQWORD("LastUsedTimeStart", 1)
	if err := s.SaveTree(second); err != nil {
		t.Fatalf("second SaveTree() failed: %v", err)
	}

	var count int
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM keys`).Scan(&count); err != nil {
		t.Fatalf("count keys: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 keys after replace (root + Only.One), got %d", count)
	}
}

func TestQWORD_HighBitRoundTrip(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	root := hive.NewNode("webcam")
	root.Child("Big").SetQWORD("LastUsedTimeStart", 0xFFFFFFFFFFFFFFFF)
	if err := s.SaveTree(root); err != nil {
		t.Fatalf("SaveTree() failed: %v", err)
	}

	k, err := s.Root()
	if err != nil {
		t.Fatalf("Root() failed: %v", err)
	}
	big, err := k.OpenSubKey("Big")
	if err != nil {
		t.Fatalf("OpenSubKey(Big) failed: %v", err)
	}
	got, err := big.QWORD("LastUsedTimeStart")
	if err != nil {
		t.Fatalf("QWORD() failed: %v", err)
	}
	if got != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("QWORD() = %#x, want 0xffffffffffffffff", got)
	}
}

func TestOpenReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hive.db")

	w, err := New(path)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := w.CreateSchema(); err != nil {
		t.Fatalf("CreateSchema() failed: %v", err)
	}
	if err := w.SaveTree(sampleTree()); err != nil {
		t.Fatalf("SaveTree() failed: %v", err)
	}
	w.Close()

	r, err := OpenReadOnly(path)
	if err != nil {
		t.Fatalf("OpenReadOnly() failed: %v", err)
	}
	if err := r.CreateSchema(); err == nil {
		t.Error("CreateSchema() on read-only store should fail")
	}

	root, err := r.Root()
	if err != nil {
		t.Fatalf("Root() failed: %v", err)
	}
	names, err := root.SubKeyNames()
	if err != nil {
		t.Fatalf("SubKeyNames() failed: %v", err)
	}
	if len(names) != 3 {
		t.Errorf("expected 3 sub-keys, got %v", names)
	}
	if err := root.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}

func TestOpenReadOnly_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	if _, err := OpenReadOnly(path); err == nil {
		t.Error("OpenReadOnly() on a missing file should fail")
	}
}
