package platform_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/yourusername/nfx-chrome/internal/platform"
	mock_platform "github.com/yourusername/nfx-chrome/internal/platform/mocks"
	"github.com/yourusername/nfx-chrome/internal/types"
)

func TestDetectProbesOnce(t *testing.T) {
	platform.ResetDetection()
	defer platform.ResetDetection()

	ctrl := gomock.NewController(t)
	p := mock_platform.NewMockPlatform(ctrl)
	p.EXPECT().Name().Return("mock-once").AnyTimes()
	p.EXPECT().Probe().Return(platform.Capabilities{CustomChrome: true}).Times(1)

	for i := 0; i < 5; i++ {
		caps := platform.Detect(p)
		assert.True(t, caps.CustomChrome)
	}
}

func TestDetectNil(t *testing.T) {
	caps := platform.Detect(nil)
	assert.False(t, caps.CustomChrome)
	assert.NotEmpty(t, caps.Reason)
}

func TestCurrentFlags(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock_platform.NewMockPlatform(ctrl)
	p.EXPECT().IsMinimized().Return(true)
	p.EXPECT().IsMaximized().Return(true)
	p.EXPECT().IsFullScreen().Return(false)

	assert.Equal(t, types.Flags{Iconified: true, Maximized: true}, platform.CurrentFlags(p))
}

func TestSetFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock_platform.NewMockPlatform(ctrl)
	boom := errors.New("boom")

	gomock.InOrder(
		p.EXPECT().SetIconified(true).Return(nil),
		p.EXPECT().SetMaximized(false).Return(nil),
		p.EXPECT().SetFullScreen(true).Return(boom),
	)

	assert.NoError(t, platform.SetFlag(p, types.FlagIconified, true))
	assert.NoError(t, platform.SetFlag(p, types.FlagMaximized, false))
	assert.ErrorIs(t, platform.SetFlag(p, types.FlagFullScreen, true), boom)
	assert.Error(t, platform.SetFlag(p, types.Flag(99), true))
}

func TestDisabled(t *testing.T) {
	var p platform.Platform = platform.Disabled{}

	assert.False(t, p.Probe().CustomChrome)
	assert.ErrorIs(t, p.InstallWindowProcedure(nil), platform.ErrUnavailable)
	assert.ErrorIs(t, p.SetMaximized(true), platform.ErrUnavailable)
	assert.NoError(t, p.ApplyDecorationUpdate(true, false))
	assert.NoError(t, p.SetTaskbarVisibility(true))
	assert.Empty(t, p.Screens())
}

func TestParseCornerPreference(t *testing.T) {
	tests := []struct {
		input  string
		want   platform.CornerPreference
		wantOK bool
	}{
		{"", platform.CornerDefault, true},
		{"square", platform.CornerDoNotRound, true},
		{"round", platform.CornerRound, true},
		{"round-small", platform.CornerRoundSmall, true},
		{"hexagonal", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := platform.ParseCornerPreference(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
