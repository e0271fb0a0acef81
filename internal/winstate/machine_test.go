package winstate

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/nfx-chrome/internal/types"
)

type flagStep struct {
	flag types.Flag
	on   bool
}

func run(m *Machine, flags *types.Flags, steps ...flagStep) {
	for _, s := range steps {
		*flags = flags.With(s.flag, s.on)
		m.OnFlagChanged(s.flag, s.on, *flags)
	}
}

func TestNormalMinimizeRestore(t *testing.T) {
	m := New(zerolog.Nop())
	var flags types.Flags

	run(m, &flags, flagStep{types.FlagIconified, true})
	assert.Equal(t, types.StateMinimized, m.State())
	prior, ok := m.RestoreTarget()
	require.True(t, ok)
	assert.Equal(t, types.StateNormal, prior)

	run(m, &flags, flagStep{types.FlagIconified, false})
	assert.Equal(t, types.StateNormal, m.State())
}

func TestMaximizedMinimizeRestore(t *testing.T) {
	m := New(zerolog.Nop())
	var flags types.Flags

	run(m, &flags, flagStep{types.FlagMaximized, true})
	require.Equal(t, types.StateMaximized, m.State())

	run(m, &flags, flagStep{types.FlagIconified, true})
	assert.Equal(t, types.StateMinimized, m.State())
	prior, _ := m.RestoreTarget()
	assert.Equal(t, types.StateMaximized, prior)

	run(m, &flags, flagStep{types.FlagIconified, false})
	assert.Equal(t, types.StateMaximized, m.State())
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		name  string
		start types.Flags
		steps []flagStep
		want  types.WindowState
	}{
		{
			name:  "maximize then restore",
			steps: []flagStep{{types.FlagMaximized, true}, {types.FlagMaximized, false}},
			want:  types.StateNormal,
		},
		{
			name:  "fullscreen wins over maximized",
			steps: []flagStep{{types.FlagFullScreen, true}, {types.FlagMaximized, true}},
			want:  types.StateFullScreen,
		},
		{
			name:  "leaving fullscreen while maximized",
			steps: []flagStep{{types.FlagMaximized, true}, {types.FlagFullScreen, true}, {types.FlagFullScreen, false}},
			want:  types.StateMaximized,
		},
		{
			name:  "leaving fullscreen to normal",
			steps: []flagStep{{types.FlagFullScreen, true}, {types.FlagFullScreen, false}},
			want:  types.StateNormal,
		},
		{
			name:  "maximize cleared while minimized stays minimized",
			steps: []flagStep{{types.FlagMaximized, true}, {types.FlagIconified, true}, {types.FlagMaximized, false}},
			want:  types.StateMinimized,
		},
		{
			name:  "fullscreen minimize restore",
			steps: []flagStep{{types.FlagFullScreen, true}, {types.FlagIconified, true}, {types.FlagIconified, false}},
			want:  types.StateFullScreen,
		},
		{
			name: "maximize cleared while minimized restores to normal",
			steps: []flagStep{
				{types.FlagMaximized, true}, {types.FlagIconified, true},
				{types.FlagMaximized, false}, {types.FlagIconified, false},
			},
			want: types.StateNormal,
		},
		{
			name: "maximize reported while minimized ends maximized",
			steps: []flagStep{
				{types.FlagIconified, true}, {types.FlagMaximized, true},
				{types.FlagIconified, false},
			},
			want: types.StateMaximized,
		},
		{
			name:  "spurious un-iconify derives from flags",
			steps: []flagStep{{types.FlagIconified, false}},
			want:  types.StateNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(zerolog.Nop())
			flags := tt.start
			run(m, &flags, tt.steps...)
			assert.Equal(t, tt.want, m.State())
		})
	}
}

func TestUnchangedCandidateIsNotPublished(t *testing.T) {
	m := New(zerolog.Nop())
	var got []Transition
	m.Subscribe(func(tr Transition) { got = append(got, tr) })

	_, changed := m.OnFlagChanged(types.FlagMaximized, true, types.Flags{})
	assert.True(t, changed)
	_, changed = m.OnFlagChanged(types.FlagMaximized, true, types.Flags{Maximized: true})
	assert.False(t, changed)

	require.Len(t, got, 1)
	assert.Equal(t, Transition{From: types.StateNormal, To: types.StateMaximized}, got[0])
}

func TestMinimizeTwiceKeepsRestoreTarget(t *testing.T) {
	m := New(zerolog.Nop())
	m.OnFlagChanged(types.FlagMaximized, true, types.Flags{})
	m.OnFlagChanged(types.FlagIconified, true, types.Flags{Maximized: true})
	m.OnFlagChanged(types.FlagIconified, true, types.Flags{Maximized: true, Iconified: true})

	prior, ok := m.RestoreTarget()
	assert.True(t, ok)
	assert.Equal(t, types.StateMaximized, prior)
}

func TestSync(t *testing.T) {
	m := New(zerolog.Nop())

	tr, changed := m.Sync(types.Flags{Maximized: true})
	assert.True(t, changed)
	assert.Equal(t, types.StateMaximized, tr.To)

	_, changed = m.Sync(types.Flags{Maximized: true})
	assert.False(t, changed)

	m.Sync(types.Flags{Iconified: true, Maximized: true})
	assert.Equal(t, types.StateMinimized, m.State())
}

func TestRequestFlags(t *testing.T) {
	restore := FlagRequest{Flag: types.FlagIconified, On: false}
	assert.Equal(t, []FlagRequest{
		restore,
		{Flag: types.FlagFullScreen, On: false},
		{Flag: types.FlagMaximized, On: true},
	}, RequestFlags(types.StateMaximized))
	assert.Equal(t, []FlagRequest{{Flag: types.FlagIconified, On: true}}, RequestFlags(types.StateMinimized))
	assert.Equal(t, []FlagRequest{restore, {Flag: types.FlagFullScreen, On: true}}, RequestFlags(types.StateFullScreen))

	normal := RequestFlags(types.StateNormal)
	assert.Len(t, normal, 3)
	assert.Equal(t, restore, normal[0], "restore from minimized before clearing the rest")
	for _, r := range normal {
		assert.False(t, r.On)
	}
}

func TestToggleTarget(t *testing.T) {
	assert.Equal(t, types.StateNormal, ToggleTarget(types.StateMaximized))
	assert.Equal(t, types.StateMaximized, ToggleTarget(types.StateNormal))
	assert.Equal(t, types.StateMaximized, ToggleTarget(types.StateFullScreen))
}

func TestSystemMenuItems(t *testing.T) {
	enabled := func(items []MenuItem) map[MenuCommand]bool {
		out := make(map[MenuCommand]bool)
		for _, it := range items {
			out[it.Command] = it.Enabled
		}
		return out
	}

	tests := []struct {
		name      string
		state     types.WindowState
		resizable bool
		want      map[MenuCommand]bool
	}{
		{
			name:      "normal resizable",
			state:     types.StateNormal,
			resizable: true,
			want: map[MenuCommand]bool{
				MenuRestore: false, MenuMove: true, MenuSize: true,
				MenuMinimize: true, MenuMaximize: true, MenuClose: true,
			},
		},
		{
			name:  "normal fixed size",
			state: types.StateNormal,
			want: map[MenuCommand]bool{
				MenuRestore: false, MenuMove: true, MenuSize: false,
				MenuMinimize: true, MenuMaximize: true, MenuClose: true,
			},
		},
		{
			name:      "maximized",
			state:     types.StateMaximized,
			resizable: true,
			want: map[MenuCommand]bool{
				MenuRestore: true, MenuMove: false, MenuSize: false,
				MenuMinimize: true, MenuMaximize: false, MenuClose: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := SystemMenuItems(tt.state, tt.resizable)
			assert.Equal(t, tt.want, enabled(items))
			assert.True(t, items[len(items)-1].Default)
		})
	}
}

func TestMenuCommandTarget(t *testing.T) {
	s, ok := MenuMaximize.Target()
	assert.True(t, ok)
	assert.Equal(t, types.StateMaximized, s)

	_, ok = MenuMove.Target()
	assert.False(t, ok)
}
