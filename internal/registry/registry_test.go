package registry

import "testing"

func TestLookupLanguage(t *testing.T) {
	lang, ok := LookupLanguage("py")
	if !ok {
		t.Fatal("expected py to be registered")
	}
	if lang.Name != "Python" || lang.Mode != "python" {
		t.Errorf("unexpected language: %+v", lang)
	}
}

func TestLookupLanguage_Unknown(t *testing.T) {
	if _, ok := LookupLanguage("zz"); ok {
		t.Error("expected zz to be absent")
	}
}

func TestLookupTheme(t *testing.T) {
	th, ok := LookupTheme("monokai")
	if !ok {
		t.Fatal("expected monokai to be registered")
	}
	if th.Name != "Monokai" {
		t.Errorf("unexpected theme: %+v", th)
	}
}

func TestLookupTheme_Unknown(t *testing.T) {
	if _, ok := LookupTheme("hotdog-stand"); ok {
		t.Error("expected hotdog-stand to be absent")
	}
}

func TestDefaultThemeIsRegistered(t *testing.T) {
	if _, ok := LookupTheme(DefaultTheme); !ok {
		t.Fatalf("default theme %q missing from registry", DefaultTheme)
	}
}

func TestTablesNonEmpty(t *testing.T) {
	if len(Languages()) == 0 || len(Themes()) == 0 {
		t.Fatal("registry tables must not be empty")
	}
}
