package money

import "testing"

func TestParsePaise(t *testing.T) {
	cases := []struct {
		in      string
		want    Paise
		wantErr bool
	}{
		{in: "40", want: 4000},
		{in: "10.50", want: 1050},
		{in: "10.5", want: 1050},
		{in: "0", want: 0},
		{in: "0.01", want: 1},
		{in: " 12.00 ", want: 1200},
		{in: "", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "+5", wantErr: true},
		{in: "10.505", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "10.x", wantErr: true},
		{in: ".50", wantErr: true},
		{in: "10.", wantErr: true},
		{in: "10.-5", wantErr: true},
		{in: "10.+5", wantErr: true},
		{in: "0.-5", wantErr: true},
	}

	for _, c := range cases {
		got, err := ParsePaise(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParsePaise(%q): expected error, got %d", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePaise(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParsePaise(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestPaiseString(t *testing.T) {
	cases := []struct {
		in   Paise
		want string
	}{
		{in: 4000, want: "40.00"},
		{in: 1050, want: "10.50"},
		{in: 1, want: "0.01"},
		{in: 0, want: "0.00"},
		{in: 12000, want: "120.00"},
		{in: -1050, want: "-10.50"},
		{in: -1, want: "-0.01"},
	}

	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("Paise(%d).String() = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPaiseMul(t *testing.T) {
	if got := Paise(1000).Mul(3); got != 3000 {
		t.Errorf("Mul: got %d, want 3000", got)
	}
}
