package chart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/driftlab/cookietrail/store"
)

func TestRender(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "sessionid.csv")

	base := time.Date(2026, 8, 25, 9, 0, 0, 0, time.Local)
	rows := []store.Row{
		{Time: base, Raw: "a1", Scalar: 5.0},
		{Time: base.Add(time.Second), Raw: "a2", Scalar: 6.25},
		{Time: base.Add(2 * time.Second), Raw: "a2", Scalar: 6.25},
		{Time: base.Add(3 * time.Second), Raw: "b9", Scalar: 3.5},
	}

	imagePath, err := Render(csvPath, rows)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "sessionid.png"), imagePath)

	info, err := os.Stat(imagePath)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestRender_NoRows(t *testing.T) {
	_, err := Render(filepath.Join(t.TempDir(), "x.csv"), nil)
	require.Error(t, err)
}

func TestRender_SinglePoint(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "theme.csv")
	rows := []store.Row{{Time: time.Now(), Raw: "dark", Scalar: 5.0}}

	imagePath, err := Render(csvPath, rows)
	require.NoError(t, err)
	require.FileExists(t, imagePath)
}
