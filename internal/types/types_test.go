package types

import "testing"

func TestRectCenter(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want Point
	}{
		{
			name: "origin rect",
			rect: Rect{X: 0, Y: 0, Width: 100, Height: 40},
			want: Point{X: 50, Y: 20},
		},
		{
			name: "close button",
			rect: Rect{X: 1234, Y: 0, Width: 46, Height: 40},
			want: Point{X: 1257, Y: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rect.Center()
			if got.X != tt.want.X || got.Y != tt.want.Y {
				t.Errorf("Center() = (%v, %v), want (%v, %v)", got.X, got.Y, tt.want.X, tt.want.Y)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	rect := Rect{X: 0, Y: 0, Width: 100, Height: 40}

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"center point", Point{X: 50, Y: 20}, true},
		{"top-left corner", Point{X: 0, Y: 0}, true},
		{"last pixel", Point{X: 99, Y: 39}, true},
		{"right edge exclusive", Point{X: 100, Y: 20}, false},
		{"bottom edge exclusive", Point{X: 50, Y: 40}, false},
		{"outside left", Point{X: -1, Y: 20}, false},
		{"outside top", Point{X: 50, Y: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rect.Contains(tt.point); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestRectOverlap(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	tests := []struct {
		name  string
		other Rect
		want  float64
	}{
		{"identical", a, 10000},
		{"half", Rect{X: 50, Y: 0, Width: 100, Height: 100}, 5000},
		{"touching", Rect{X: 100, Y: 0, Width: 10, Height: 10}, 0},
		{"disjoint", Rect{X: 500, Y: 500, Width: 10, Height: 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlap(tt.other); got != tt.want {
				t.Errorf("Overlap(%v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestRectOffsetAndEmpty(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}.Offset(7, 6)
	if r.X != 17 || r.Y != 26 || r.Width != 30 || r.Height != 40 {
		t.Errorf("Offset() = %+v", r)
	}
	if r.IsEmpty() {
		t.Error("rect with area should not be empty")
	}
	if !(Rect{Width: 0, Height: 10}).IsEmpty() {
		t.Error("zero width rect should be empty")
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input    string
		wantRole Role
		wantOK   bool
	}{
		{"drag", RoleDrag, true},
		{"client", RoleClient, true},
		{"sysmenu", RoleSystemMenu, true},
		{"minimize", RoleMinimize, true},
		{"MAX", RoleMaximize, true},
		{" close ", RoleClose, true},
		{"invalid", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			gotRole, gotOK := ParseRole(tt.input)
			if gotRole != tt.wantRole || gotOK != tt.wantOK {
				t.Errorf("ParseRole(%q) = (%v, %v), want (%v, %v)",
					tt.input, gotRole, gotOK, tt.wantRole, tt.wantOK)
			}
		})
	}
}

func TestRoleExclusive(t *testing.T) {
	exclusive := map[Role]bool{
		RoleDrag:       false,
		RoleClient:     false,
		RoleSystemMenu: true,
		RoleMinimize:   true,
		RoleMaximize:   true,
		RoleClose:      true,
	}
	for role, want := range exclusive {
		if got := role.IsExclusive(); got != want {
			t.Errorf("%v.IsExclusive() = %v, want %v", role, got, want)
		}
		if role.PseudoClass() == "" {
			t.Errorf("%v has no pseudo class", role)
		}
	}
}

func TestHitCodeValues(t *testing.T) {
	// Values are part of the platform contract
	tests := []struct {
		code HitCode
		want int
		name string
	}{
		{HitClient, 1, "client"},
		{HitCaption, 2, "caption"},
		{HitSysMenu, 3, "sysmenu"},
		{HitMinButton, 8, "min"},
		{HitMaxButton, 9, "max"},
		{HitTop, 12, "top"},
		{HitClose, 20, "close"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if int(tt.code) != tt.want {
				t.Errorf("%s = %d, want %d", tt.name, int(tt.code), tt.want)
			}
			if tt.code.String() != tt.name {
				t.Errorf("String() = %q, want %q", tt.code.String(), tt.name)
			}
			parsed, ok := ParseHitCode(tt.name)
			if !ok || parsed != tt.code {
				t.Errorf("ParseHitCode(%q) = (%v, %v)", tt.name, parsed, ok)
			}
		})
	}
}

func TestEdgeHitCode(t *testing.T) {
	tests := []struct {
		edge Edge
		want HitCode
	}{
		{EdgeNone, HitClient},
		{EdgeTop, HitTop},
		{EdgeLeft, HitLeft},
		{EdgeRight, HitRight},
		{EdgeBottom, HitBottom},
	}

	for _, tt := range tests {
		t.Run(tt.edge.String(), func(t *testing.T) {
			if got := tt.edge.HitCode(); got != tt.want {
				t.Errorf("HitCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseWindowState(t *testing.T) {
	tests := []struct {
		input  string
		want   WindowState
		wantOK bool
	}{
		{"normal", StateNormal, true},
		{"minimized", StateMinimized, true},
		{"iconified", StateMinimized, true},
		{"maximized", StateMaximized, true},
		{"fullscreen", StateFullScreen, true},
		{"FULL_SCREEN", StateFullScreen, true},
		{"sideways", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseWindowState(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseWindowState(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestWindowStateText(t *testing.T) {
	var s WindowState
	if err := s.UnmarshalText([]byte("maximized")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if s != StateMaximized {
		t.Errorf("got %v, want maximized", s)
	}
	if err := s.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("expected error for unknown state")
	}
	text, _ := StateFullScreen.MarshalText()
	if string(text) != "fullscreen" {
		t.Errorf("MarshalText = %q", text)
	}
}

func TestFlagsWith(t *testing.T) {
	f := Flags{}.With(FlagMaximized, true)
	if !f.Maximized || f.Iconified || f.FullScreen {
		t.Errorf("With(maximized) = %+v", f)
	}
	f = f.With(FlagIconified, true)
	if !f.Get(FlagIconified) || !f.Get(FlagMaximized) {
		t.Errorf("With(iconified) = %+v", f)
	}
	if f.Get(FlagFullScreen) {
		t.Error("fullscreen should be unset")
	}
}

func TestStateIota(t *testing.T) {
	// Verify iota ordering, NORMAL is the zero value
	if StateNormal != 0 {
		t.Errorf("StateNormal = %d, want 0", StateNormal)
	}
	if StateFullScreen != 3 {
		t.Errorf("StateFullScreen = %d, want 3", StateFullScreen)
	}
}
