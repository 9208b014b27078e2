// Copyright (c) 2026 Keymaster Team
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.
package i18n

import (
	"testing"
)

func TestInitAndAvailableLocales(t *testing.T) {
	Init("en")
	if GetLang() != "en" {
		t.Fatalf("expected lang 'en', got %q", GetLang())
	}

	av := GetAvailableLocales()
	for _, k := range []string{"en", "de", "pt"} {
		if _, ok := av[k]; !ok {
			t.Fatalf("expected available locale %q to be present, got %v", k, av)
		}
	}
	if av["de"] != "Deutsch" {
		t.Fatalf("unexpected display name for de: %q", av["de"])
	}
}

func TestT_BasicAndFormatting(t *testing.T) {
	Init("en")
	defer Init("en")

	if got := T("list.title"); got != "Contacts" {
		t.Fatalf("expected 'Contacts', got %q", got)
	}

	got := T("list.delete_confirm.question", "Ana")
	if got != "Delete Ana?" {
		t.Fatalf("unexpected formatted translation: %q", got)
	}

	SetLang("de")
	if GetLang() != "de" {
		t.Fatalf("expected lang 'de', got %q", GetLang())
	}
	if got := T("list.title"); got != "Kontakte" {
		t.Fatalf("expected German 'Kontakte', got %q", got)
	}

	SetLang("pt")
	if got := T("form.phone"); got != "Telefone" {
		t.Fatalf("expected Portuguese 'Telefone', got %q", got)
	}
}

func TestT_FallbacksToEnglishAndID(t *testing.T) {
	Init("fr")
	defer Init("en")

	if got := T("form.submit"); got != "Save" {
		t.Fatalf("expected English fallback 'Save', got %q", got)
	}
	if got := T("no.such.message"); got != "no.such.message" {
		t.Fatalf("expected message ID fallback, got %q", got)
	}
}

// Every key of the English file must exist in the other locales.
func TestLocalesAreComplete(t *testing.T) {
	en := localeMessages(t, "en")
	for _, lang := range []string{"de", "pt"} {
		other := localeMessages(t, lang)
		for id := range en {
			if _, ok := other[id]; !ok {
				t.Errorf("%s: missing translation for %q", lang, id)
			}
		}
		for id := range other {
			if _, ok := en[id]; !ok {
				t.Errorf("%s: stray message %q not in en", lang, id)
			}
		}
	}
}
