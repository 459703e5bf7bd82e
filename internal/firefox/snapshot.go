package firefox

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// snapshot copies the live places.sqlite to a uniquely-named file in the OS
// temp directory so queries never contend with Firefox's own lock on the
// store. The returned cleanup must run on every exit path; removal failures
// are reported to the reader's logger, not escalated.
func (r *Reader) snapshot() (string, func(), error) {
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return "", nil, fmt.Errorf("generate snapshot name: %w", err)
	}

	dst := filepath.Join(os.TempDir(), "places_copy_"+hex.EncodeToString(suffix)+".sqlite")

	if err := copyFile(r.placesPath, dst); err != nil {
		return "", nil, fmt.Errorf("copy history store: %w", err)
	}

	cleanup := func() {
		if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
			r.log.Warn().Err(err).Str("path", dst).Msg("failed to delete history snapshot")
		}
	}

	return dst, cleanup, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}

	return out.Close()
}
