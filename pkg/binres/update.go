//go:build windows

package binres

import (
	"fmt"
	"log"

	"github.com/function61/gokit/logex"
	"golang.org/x/sys/windows"
)

// langNeutral is MAKELANGID(LANG_NEUTRAL, SUBLANG_NEUTRAL).
const langNeutral uint16 = 0

// Update is one open resource-update transaction against a target image.
// Nothing is visible in the file until Commit. The builder batches all its
// config entries into one transaction; failure scope stays per-transaction.
type Update struct {
	path   string
	handle windows.Handle
	logl   *logex.Leveled
}

// BeginUpdate opens the target image for resource modification.
func BeginUpdate(path string, logger *log.Logger) (*Update, error) {
	handle, err := beginUpdateResource(path, false)
	if err != nil {
		return nil, fmt.Errorf("open %s for resource update: %w", path, err)
	}

	return &Update{
		path:   path,
		handle: handle,
		logl:   logex.Levels(logger),
	}, nil
}

// SetString writes/overwrites a named entry with the UTF-16LE encoding of text.
func (u *Update) SetString(name string, text string) error {
	if err := u.SetBytes(name, encodeText(text)); err != nil {
		return err
	}

	u.logl.Debug.Printf("added resource: %s = %s", name, text)
	return nil
}

// SetBytes writes/overwrites a named entry with a raw payload.
func (u *Update) SetBytes(name string, data []byte) error {
	if err := updateResourceNamed(u.handle, name, langNeutral, data); err != nil {
		u.logl.Error.Printf("failed to add resource: %s", name)
		return fmt.Errorf("update resource %s in %s: %w", name, u.path, err)
	}
	return nil
}

// Commit writes all staged changes into the image.
func (u *Update) Commit() error {
	if err := endUpdateResource(u.handle, false); err != nil {
		u.logl.Error.Printf("failed to commit resource update to %s", u.path)
		return fmt.Errorf("commit resource update to %s: %w", u.path, err)
	}

	u.logl.Debug.Printf("committed resource update to %s", u.path)
	return nil
}

// Discard abandons all staged changes, leaving the image untouched.
func (u *Update) Discard() error {
	return endUpdateResource(u.handle, true)
}
