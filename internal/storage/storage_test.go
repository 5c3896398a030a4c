package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsSafeName(t *testing.T) {
	for _, name := range []string{"photo.jpg", "Photo_1(2).PNG.png", "a-b.webp", "x.jpeg", "photo.PNG", "Scan.JpEg"} {
		require.True(t, IsSafeName(name), name)
	}
	for _, name := range []string{"", ".hidden.png", "../etc.png", "script.exe", "no_extension", "white space.png"} {
		require.False(t, IsSafeName(name), name)
	}
}

func TestDiskSaveAndRemove(t *testing.T) {
	root := t.TempDir()
	d := NewDisk(root, 1<<20)
	ctx := context.Background()

	ref, err := d.Save(ctx, "product_images", "Shoe.png", strings.NewReader("pixels"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "product_images/"))
	require.True(t, strings.HasSuffix(ref, ".png"))

	upper, err := d.Save(ctx, "product_images", "SHOE.PNG", strings.NewReader("pixels"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(upper, ".png"))

	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(ref)))
	require.NoError(t, err)
	require.Equal(t, "pixels", string(content))

	require.NoError(t, d.Remove(ctx, ref))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(ref)))
	require.True(t, os.IsNotExist(err))

	// Removing twice is fine.
	require.NoError(t, d.Remove(ctx, ref))
}

func TestDiskRejectsUnsafeInput(t *testing.T) {
	d := NewDisk(t.TempDir(), 4)
	ctx := context.Background()

	_, err := d.Save(ctx, "product_images", "evil.sh", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrUnsafeName)

	_, err = d.Save(ctx, "../outside", "ok.png", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrBadPath)

	_, err = d.Save(ctx, "product_images", "big.png", strings.NewReader("too many bytes"))
	require.ErrorIs(t, err, ErrTooLarge)

	require.ErrorIs(t, d.Remove(ctx, "../../etc/passwd"), ErrBadPath)
}
