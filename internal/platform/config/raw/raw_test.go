package raw

import "testing"

func TestConfGet(t *testing.T) {
	t.Setenv("APP_NAME", " logzq ")
	t.Setenv("LOG_LEVEL", " debug ")

	root := New()
	lg := root.Prefix("LOG_")

	tests := []struct {
		name string
		conf Conf
		key  string
		def  string
		want string
	}{
		{name: "root no default used", conf: root, key: "APP_NAME", def: "x", want: "logzq"},
		{name: "prefixed hit", conf: lg, key: "LEVEL", def: "x", want: "debug"},
		{name: "missing returns default", conf: lg, key: "MISSING", def: "defv", want: "defv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.Get(tt.key, tt.def); got != tt.want {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestConfLookupWhitespaceIsMissing(t *testing.T) {
	t.Setenv("LOG_WS", "   ")
	if _, ok := New().Prefix("LOG_").Lookup("WS"); ok {
		t.Fatalf("Lookup on whitespace should report missing")
	}
	if got := New().Prefix("LOG_").Key("WS"); got != "LOG_WS" {
		t.Fatalf("Key = %q", got)
	}
}

func TestConfGetBool(t *testing.T) {
	c := New().Prefix("LOG_")

	t.Setenv("LOG_T1", "true")
	t.Setenv("LOG_T2", "1")
	t.Setenv("LOG_T3", "YES")
	t.Setenv("LOG_T4", " on ")
	t.Setenv("LOG_F1", "false")
	t.Setenv("LOG_F2", "0")
	t.Setenv("LOG_F3", "nope")

	for _, k := range []string{"T1", "T2", "T3", "T4"} {
		if !c.GetBool(k, false) {
			t.Fatalf("GetBool(%s) = false, want true", k)
		}
	}
	for _, k := range []string{"F1", "F2", "F3"} {
		if c.GetBool(k, true) {
			t.Fatalf("GetBool(%s) = true, want false", k)
		}
	}
	if !c.GetBool("MISSING", true) {
		t.Fatalf("GetBool default not honoured")
	}
}

func TestConfGetInt(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_N", " 42 ")
	t.Setenv("LOG_NEG", "-3")
	t.Setenv("LOG_BAD", "4x")

	if got := c.GetInt("N", 0); got != 42 {
		t.Fatalf("GetInt = %d, want 42", got)
	}
	if got := c.GetInt("NEG", 7); got != 7 {
		t.Fatalf("GetInt negative -> default, got %d", got)
	}
	if got := c.GetInt("BAD", 9); got != 9 {
		t.Fatalf("GetInt bad -> default, got %d", got)
	}
	if got := c.GetInt("MISSING", 5); got != 5 {
		t.Fatalf("GetInt missing -> default, got %d", got)
	}
}
