package progress_test

import (
	"testing"

	"github.com/cheggaaa/pb/v3"
	"github.com/royalcat/rdensity/internal/progress"
	"github.com/stretchr/testify/require"
)

var (
	_ progress.Bar = progress.Nop{}
	_ progress.Bar = (*pb.ProgressBar)(nil)
)

func TestNewDisabled(t *testing.T) {
	bar := progress.New(false, 3, "Reading")
	require.Equal(t, progress.Nop{}, bar)
	require.Nil(t, bar.Increment())
	require.Nil(t, bar.Finish())
}
